// Package transcribe wraps whisper.cpp Go bindings for speech-to-text.
// The model is loaded once at startup and used serially for the whole
// batch.
package transcribe

import "errors"

// ErrModelLoad is returned when the requested model cannot be loaded.
// It is fatal: no useful work can happen without a model.
var ErrModelLoad = errors.New("model load failed")

// Transcriber converts audio samples to text.
type Transcriber interface {
	// Transcribe converts mono 16kHz float32 samples to text.
	Transcribe(samples []float32) (string, error)
	// Close releases model resources.
	Close() error
}

// Options configures the transcription backend.
type Options struct {
	// Language is a whisper language code ("en", "uk", ...) or "auto"
	// for detection on multilingual models.
	Language string
	// Threads caps inference threads; 0 lets the backend decide.
	Threads uint
}

// New loads the whisper model at modelPath and returns a Transcriber.
// The caller must call Close() when done.
func New(modelPath string, opts Options) (Transcriber, error) {
	return newWhisper(modelPath, opts)
}
