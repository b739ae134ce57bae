package transcribe

import (
	"fmt"
	"strings"
)

// Model describes one whisper.cpp ggml model file from the upstream
// HuggingFace repository.
type Model struct {
	Type      string // "tiny", "base", "small", "medium", "large"
	Quant     string // "none", "4bit", "8bit"
	File      string // ggml file name, e.g. "ggml-large-v3-q5_0.bin"
	Label     string // display name
	Size      string // human readable size
	SizeBytes int64  // for download progress
}

const modelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/"

// URL returns the download URL for the model file.
func (m *Model) URL() string {
	return modelBaseURL + m.File
}

// Catalog lists the supported model type / quantization combinations.
// 4bit maps to the q5 ggml quantizations, 8bit to q8_0.
var Catalog = []Model{
	{Type: "tiny", Quant: "none", File: "ggml-tiny.bin", Label: "Tiny", Size: "75 MB", SizeBytes: 75_000_000},
	{Type: "tiny", Quant: "4bit", File: "ggml-tiny-q5_1.bin", Label: "Tiny q5_1", Size: "31 MB", SizeBytes: 31_000_000},
	{Type: "tiny", Quant: "8bit", File: "ggml-tiny-q8_0.bin", Label: "Tiny q8_0", Size: "42 MB", SizeBytes: 42_000_000},
	{Type: "base", Quant: "none", File: "ggml-base.bin", Label: "Base", Size: "142 MB", SizeBytes: 142_000_000},
	{Type: "base", Quant: "4bit", File: "ggml-base-q5_1.bin", Label: "Base q5_1", Size: "57 MB", SizeBytes: 57_000_000},
	{Type: "base", Quant: "8bit", File: "ggml-base-q8_0.bin", Label: "Base q8_0", Size: "78 MB", SizeBytes: 78_000_000},
	{Type: "small", Quant: "none", File: "ggml-small.bin", Label: "Small", Size: "466 MB", SizeBytes: 466_000_000},
	{Type: "small", Quant: "4bit", File: "ggml-small-q5_1.bin", Label: "Small q5_1", Size: "181 MB", SizeBytes: 181_000_000},
	{Type: "small", Quant: "8bit", File: "ggml-small-q8_0.bin", Label: "Small q8_0", Size: "252 MB", SizeBytes: 252_000_000},
	{Type: "medium", Quant: "none", File: "ggml-medium.bin", Label: "Medium", Size: "1.5 GB", SizeBytes: 1_500_000_000},
	{Type: "medium", Quant: "4bit", File: "ggml-medium-q5_0.bin", Label: "Medium q5_0", Size: "514 MB", SizeBytes: 514_000_000},
	{Type: "medium", Quant: "8bit", File: "ggml-medium-q8_0.bin", Label: "Medium q8_0", Size: "785 MB", SizeBytes: 785_000_000},
	{Type: "large", Quant: "none", File: "ggml-large-v3.bin", Label: "Large V3", Size: "3.0 GB", SizeBytes: 3_000_000_000},
	{Type: "large", Quant: "4bit", File: "ggml-large-v3-q5_0.bin", Label: "Large V3 q5_0", Size: "1.1 GB", SizeBytes: 1_100_000_000},
	{Type: "large", Quant: "8bit", File: "ggml-large-v3-turbo-q8_0.bin", Label: "Large V3 Turbo q8_0", Size: "874 MB", SizeBytes: 874_000_000},
}

// Lookup resolves a model type and quantization mode to a catalog
// entry. An empty quant means "none".
func Lookup(modelType, quant string) (*Model, error) {
	mt := strings.ToLower(strings.TrimSpace(modelType))
	q := strings.ToLower(strings.TrimSpace(quant))
	if q == "" {
		q = "none"
	}

	for i := range Catalog {
		if Catalog[i].Type == mt && Catalog[i].Quant == q {
			return &Catalog[i], nil
		}
	}

	for i := range Catalog {
		if Catalog[i].Type == mt {
			return nil, fmt.Errorf("%w: model %q has no %q quantization", ErrModelLoad, mt, q)
		}
	}
	return nil, fmt.Errorf("%w: unknown model type %q", ErrModelLoad, modelType)
}
