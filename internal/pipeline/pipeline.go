// Package pipeline runs the transcribe-and-rename batch: scan results
// in, renamed copies out, one file at a time.
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dsamborskyi/recnamer/internal/audio"
	"github.com/dsamborskyi/recnamer/internal/namer"
	"github.com/dsamborskyi/recnamer/internal/output"
	"github.com/dsamborskyi/recnamer/internal/scan"
)

// Engine is the transcription capability the pipeline needs. It is
// satisfied by transcribe.Transcriber and by fakes in tests.
type Engine interface {
	Transcribe(samples []float32) (string, error)
}

// decodeFunc matches audio.Decode; injectable for tests.
type decodeFunc func(path string, window time.Duration) ([]float32, error)

// Config holds per-run pipeline parameters.
type Config struct {
	// InitialWindow is how much leading audio to transcribe first.
	// When the transcript misses MinWords, the window is doubled and
	// then dropped entirely (full file) before giving up.
	InitialWindow time.Duration
	// MinWords is the minimum transcript word count for a
	// transcript-derived name.
	MinWords int
}

// Summary reports what happened to the batch.
type Summary struct {
	Total    int // files discovered
	Renamed  int // named from their transcript
	Fallback int // named from the original file name
	Skipped  int // decode or write failures
}

// Pipeline processes a batch of audio files serially.
type Pipeline struct {
	engine Engine
	decode decodeFunc
	cfg    Config
}

// New builds a pipeline around a transcription engine.
func New(engine Engine, cfg Config) *Pipeline {
	return &Pipeline{engine: engine, decode: audio.Decode, cfg: cfg}
}

// Run processes every file in order. Per-file decode and write errors
// are logged and counted, never fatal: the batch is best-effort.
func (p *Pipeline) Run(files []scan.AudioFile, w *output.Writer) Summary {
	sum := Summary{Total: len(files)}

	for i, f := range files {
		index := i + 1
		log.Info("processing", "file", f.Name, "index", index, "total", len(files))

		text, err := p.transcribeFile(f.Path)
		if err != nil {
			log.Warn("skipping file", "file", f.Name, "error", err)
			sum.Skipped++
			continue
		}
		log.Debug("transcript", "file", f.Name, "words", namer.WordCount(text), "text", text)

		d := namer.Derive(text, index, f.Name, f.Ext, namer.Options{MinWords: p.cfg.MinWords})
		if d.Fallback {
			log.Debug("transcript below word minimum, using fallback name",
				"file", f.Name, "min_words", p.cfg.MinWords)
		}

		dest, err := w.Write(f.Path, d.Base, f.Ext)
		if err != nil {
			log.Warn("skipping file", "file", f.Name, "error", err)
			sum.Skipped++
			continue
		}

		if d.Fallback {
			sum.Fallback++
		} else {
			sum.Renamed++
		}
		log.Info("renamed", "from", f.Name, "to", filepath.Base(dest))
	}

	return sum
}

// transcribeFile transcribes with an escalating window: the initial
// duration, twice that, then the whole file. It returns as soon as a
// pass reaches the word minimum; after the last pass the transcript is
// returned as-is and the caller's fallback policy takes over.
func (p *Pipeline) transcribeFile(path string) (string, error) {
	windows := []time.Duration{0}
	if p.cfg.InitialWindow > 0 {
		windows = []time.Duration{p.cfg.InitialWindow, 2 * p.cfg.InitialWindow, 0}
	}

	var text string
	for _, window := range windows {
		samples, err := p.decode(path, window)
		if err != nil {
			return "", err
		}

		text, err = p.engine.Transcribe(samples)
		if err != nil {
			return "", err
		}

		if namer.WordCount(text) >= p.cfg.MinWords {
			return text, nil
		}
		if window > 0 {
			log.Debug("transcript too short, widening window",
				"file", path, "window", window, "words", namer.WordCount(text))
		}
	}

	return text, nil
}
