package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV writes a PCM WAV file with the given format and a 440Hz tone.
func writeWAV(t *testing.T, path string, sampleRate, channels int, seconds float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	n := int(float64(sampleRate) * seconds)
	data := make([]int, n*channels)
	for i := 0; i < n; i++ {
		v := int(10000 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
		for ch := 0; ch < channels; ch++ {
			data[i*channels+ch] = v
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing wav: %v", err)
	}
}

func TestDecodeWAVMono16k(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tone.wav")
	writeWAV(t, path, SampleRate, 1, 2.0)

	samples, err := decodeWAV(path, 0)
	if err != nil {
		t.Fatalf("decodeWAV() error = %v", err)
	}

	want := 2 * SampleRate
	if len(samples) != want {
		t.Errorf("len(samples) = %d, want %d", len(samples), want)
	}
	for i, s := range samples {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample[%d] = %f, out of [-1, 1]", i, s)
		}
	}
}

func TestDecodeWAVWindow(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tone.wav")
	writeWAV(t, path, SampleRate, 1, 3.0)

	samples, err := decodeWAV(path, time.Second)
	if err != nil {
		t.Fatalf("decodeWAV() error = %v", err)
	}

	if len(samples) != SampleRate {
		t.Errorf("len(samples) = %d, want %d (1s window)", len(samples), SampleRate)
	}
}

func TestDecodeWAVWindowLongerThanFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tone.wav")
	writeWAV(t, path, SampleRate, 1, 1.0)

	samples, err := decodeWAV(path, 30*time.Second)
	if err != nil {
		t.Fatalf("decodeWAV() error = %v", err)
	}
	if len(samples) != SampleRate {
		t.Errorf("len(samples) = %d, want %d (whole file)", len(samples), SampleRate)
	}
}

func TestDecodeWAVStereoResampled(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stereo.wav")
	writeWAV(t, path, 44100, 2, 1.0)

	samples, err := decodeWAV(path, 0)
	if err != nil {
		t.Fatalf("decodeWAV() error = %v", err)
	}

	// Resampling 44100 -> 16000 will not be sample-exact; allow 5% slack.
	want := SampleRate
	if len(samples) < want*95/100 || len(samples) > want*105/100 {
		t.Errorf("len(samples) = %d, want ~%d after resampling", len(samples), want)
	}
}

func TestDecodeWAVCorrupt(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not a wav file"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := decodeWAV(path, 0); err == nil {
		t.Error("decodeWAV() on garbage should return an error")
	}
}

func TestToMono(t *testing.T) {
	stereo := []int16{100, 200, -100, -200, 0, 50}
	mono := toMono(stereo, 2)

	want := []int16{150, -150, 25}
	if len(mono) != len(want) {
		t.Fatalf("len(mono) = %d, want %d", len(mono), len(want))
	}
	for i := range want {
		if mono[i] != want[i] {
			t.Errorf("mono[%d] = %d, want %d", i, mono[i], want[i])
		}
	}
}

func TestInt16ToFloat32(t *testing.T) {
	in := []int16{0, 16384, -16384, 32767, -32768}
	out := int16ToFloat32(in)

	if out[0] != 0 {
		t.Errorf("out[0] = %f, want 0", out[0])
	}
	if math.Abs(float64(out[1])-0.5) > 0.001 {
		t.Errorf("out[1] = %f, want ~0.5", out[1])
	}
	if out[4] != -1.0 {
		t.Errorf("out[4] = %f, want -1.0", out[4])
	}
}

func TestIntToInt16BitDepths(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		in       []int
		want     []int16
	}{
		{"16-bit passthrough", 16, []int{0, 1000, -1000}, []int16{0, 1000, -1000}},
		{"24-bit scaled", 24, []int{0, 1 << 22, -(1 << 22)}, []int16{0, 1 << 14, -(1 << 14)}},
		{"8-bit unsigned", 8, []int{128, 255, 0}, []int16{0, 127 << 8, -128 << 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intToInt16(tt.in, tt.bitDepth)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	args := buildFFmpegArgs("in.mp3", "/tmp/out.raw", 8*time.Second)

	joined := strings.Join(args, " ")
	for _, want := range []string{"-i in.mp3", "-t 8", "-ar 16000", "-ac 1", "-f s16le", "/tmp/out.raw"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q in %q", want, joined)
		}
	}
}

func TestBuildFFmpegArgsNoWindow(t *testing.T) {
	args := buildFFmpegArgs("in.ogg", "/tmp/out.raw", 0)
	for _, a := range args {
		if a == "-t" {
			t.Error("args should not contain -t when window is 0")
		}
	}
}
