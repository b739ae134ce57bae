// Package audio decodes input files into the 16kHz mono float32 samples
// whisper.cpp expects. WAV files are decoded in pure Go; every other
// format goes through ffmpeg.
package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-audio/wav"
	"github.com/zeozeozeo/gomplerate"
)

// SampleRate is the sample rate required by whisper.cpp.
const SampleRate = 16000

// ErrDecode is returned when an input file cannot be decoded. Callers
// treat it as a per-file failure, not a fatal one.
var ErrDecode = errors.New("cannot decode audio")

// Decode reads at most window of audio from the start of path and
// returns 16kHz mono float32 samples. A window <= 0 decodes the whole
// file.
func Decode(path string, window time.Duration) ([]float32, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".wav" {
		samples, err := decodeWAV(path, window)
		if err == nil {
			return samples, nil
		}
		if !ffmpegAvailable() {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
		}
		// Nonstandard WAV (e.g. float PCM); let ffmpeg have a go.
		log.Debug("wav decode failed, retrying with ffmpeg", "file", path, "error", err)
	} else if !ffmpegAvailable() {
		return nil, fmt.Errorf("%w: %s: ffmpeg not found in PATH (required for %s files)", ErrDecode, path, ext)
	}

	return decodeWithFFmpeg(path, window)
}

// decodeWAV decodes a PCM WAV file in pure Go, converting to mono and
// resampling to 16kHz as needed.
func decodeWAV(path string, window time.Duration) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 || buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("decode wav: missing format header")
	}

	rate := buf.Format.SampleRate
	channels := buf.Format.NumChannels
	data := buf.Data

	if window > 0 {
		limit := int(float64(rate*channels) * window.Seconds())
		limit -= limit % channels // keep whole frames
		if limit < len(data) {
			data = data[:limit]
		}
	}

	samples := intToInt16(data, int(dec.BitDepth))
	if channels > 1 {
		samples = toMono(samples, channels)
	}
	if rate != SampleRate {
		samples = resampleInt16(samples, rate, SampleRate)
	}

	return int16ToFloat32(samples), nil
}

// intToInt16 scales decoded PCM samples of the given bit depth to int16.
func intToInt16(data []int, bitDepth int) []int16 {
	shift := uint(0)
	if bitDepth > 16 {
		shift = uint(bitDepth - 16)
	}

	out := make([]int16, len(data))
	for i, v := range data {
		if bitDepth == 8 {
			// 8-bit WAV is unsigned.
			out[i] = int16((v - 128) << 8)
			continue
		}
		out[i] = int16(v >> shift)
	}
	return out
}

// toMono averages interleaved channels down to one.
func toMono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}

	mono := make([]int16, len(samples)/channels)
	for i := 0; i < len(mono); i++ {
		var sum int32
		for ch := 0; ch < channels; ch++ {
			sum += int32(samples[i*channels+ch])
		}
		mono[i] = int16(sum / int32(channels))
	}
	return mono
}

// resampleInt16 converts samples between sample rates using gomplerate.
func resampleInt16(samples []int16, fromRate, toRate int) []int16 {
	if fromRate == toRate {
		return samples
	}

	resampler, err := gomplerate.NewResampler(1, fromRate, toRate)
	if err != nil {
		log.Warn("resampler creation failed, keeping original rate", "from", fromRate, "to", toRate, "error", err)
		return samples
	}
	return resampler.ResampleInt16(samples)
}

// int16ToFloat32 normalizes int16 samples to [-1, 1].
func int16ToFloat32(samples []int16) []float32 {
	result := make([]float32, len(samples))
	for i, s := range samples {
		result[i] = float32(s) / 32768.0
	}
	return result
}

// ffmpegAvailable checks if ffmpeg is installed.
func ffmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// buildFFmpegArgs builds the ffmpeg invocation converting inputPath to
// raw 16kHz mono s16le PCM at outPath, truncated to window when set.
func buildFFmpegArgs(inputPath, outPath string, window time.Duration) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", inputPath,
	}
	if window > 0 {
		args = append(args, "-t", strconv.FormatFloat(window.Seconds(), 'f', -1, 64))
	}
	return append(args,
		"-ar", strconv.Itoa(SampleRate),
		"-ac", "1",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-y",
		outPath,
	)
}

// decodeWithFFmpeg converts any ffmpeg-supported input to 16kHz mono
// float32 samples via a temporary raw PCM file.
func decodeWithFFmpeg(path string, window time.Duration) ([]float32, error) {
	tmpFile, err := os.CreateTemp("", "recnamer-*.raw")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	cmd := exec.Command("ffmpeg", buildFFmpegArgs(path, tmpPath, window)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Debug("ffmpeg output", "output", string(output))
		return nil, fmt.Errorf("%w: %s: ffmpeg: %v", ErrDecode, path, err)
	}

	rawData, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read converted audio: %w", err)
	}
	if len(rawData) < 2 {
		return nil, fmt.Errorf("%w: %s: ffmpeg produced no audio", ErrDecode, path)
	}

	samples := make([]int16, len(rawData)/2)
	for i := 0; i < len(samples); i++ {
		samples[i] = int16(rawData[i*2]) | int16(rawData[i*2+1])<<8
	}

	return int16ToFloat32(samples), nil
}
