package transcribe

import (
	"fmt"
	"io"
	"strings"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// whisperTranscriber wraps a whisper.cpp model.
type whisperTranscriber struct {
	model whisper.Model
	opts  Options
}

// newWhisper loads a whisper ggml model from the given path.
func newWhisper(modelPath string, opts Options) (*whisperTranscriber, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrModelLoad, modelPath, err)
	}
	return &whisperTranscriber{model: model, opts: opts}, nil
}

// Close releases the whisper model resources.
func (t *whisperTranscriber) Close() error {
	if t.model != nil {
		return t.model.Close()
	}
	return nil
}

// Transcribe runs mono 16kHz float32 samples through the model and
// joins the resulting segments.
func (t *whisperTranscriber) Transcribe(samples []float32) (string, error) {
	ctx, err := t.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("create whisper context: %w", err)
	}

	lang := t.opts.Language
	switch {
	case lang == "" || lang == "auto":
		if t.model.IsMultilingual() {
			// Detection only works on multilingual models.
			_ = ctx.SetLanguage("auto")
		}
	default:
		if err := ctx.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("set language %q: %w", lang, err)
		}
	}

	if t.opts.Threads > 0 {
		ctx.SetThreads(t.opts.Threads)
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper process: %w", err)
	}

	var segments []string
	for {
		seg, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("next segment: %w", err)
		}
		segments = append(segments, seg.Text)
	}

	return strings.TrimSpace(strings.Join(segments, " ")), nil
}
