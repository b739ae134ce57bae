// recnamer transcribes the audio files in a directory with whisper.cpp
// and copies each one into a timestamped output directory under a name
// derived from its transcript.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/dsamborskyi/recnamer/internal/config"
	"github.com/dsamborskyi/recnamer/internal/models"
	"github.com/dsamborskyi/recnamer/internal/output"
	"github.com/dsamborskyi/recnamer/internal/pipeline"
	"github.com/dsamborskyi/recnamer/internal/scan"
	"github.com/dsamborskyi/recnamer/internal/transcribe"
)

const version = "0.2.0"

var cli struct {
	Run     RunCmd     `cmd:"" default:"withargs" help:"Transcribe audio files and copy them under transcript-derived names."`
	Models  ModelsCmd  `cmd:"" help:"Manage whisper model files."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

// RunCmd is the main batch command.
type RunCmd struct {
	InputDir        string `arg:"" name:"input_dir" help:"Directory containing audio files."`
	ModelType       string `name:"model_type" default:"large" help:"Whisper model type: tiny, base, small, medium, large."`
	Quant           string `name:"quant" default:"none" enum:"none,4bit,8bit" help:"Model quantization."`
	InitialDuration int    `name:"initial_duration" default:"8" help:"Seconds of leading audio to transcribe first."`
	MinWords        int    `name:"min_words" default:"8" help:"Minimum transcript words before falling back to the original name."`
	Language        string `name:"language" help:"Language code (overrides config; \"auto\" detects)."`
	Config          string `name:"config" type:"path" help:"Path to YAML config file."`
	Debug           bool   `name:"debug" help:"Per-file diagnostics (raw transcripts, naming decisions)."`
}

func (c *RunCmd) Run() error {
	if c.InitialDuration <= 0 {
		return fmt.Errorf("initial_duration must be positive, got %d", c.InitialDuration)
	}
	if c.MinWords < 0 {
		return fmt.Errorf("min_words must not be negative, got %d", c.MinWords)
	}

	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(config.ParseLogLevel(cfg.LogLevel))
	}

	language := c.Language
	if language == "" {
		language = cfg.Language
	}

	files, err := scan.Scan(c.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("no audio files found", "dir", c.InputDir)
	}

	model, err := transcribe.Lookup(c.ModelType, c.Quant)
	if err != nil {
		return err
	}

	modelPath, err := models.Ensure(cfg.ModelsDir, model)
	if err != nil {
		return err
	}

	printBanner(c, model, language, len(files))

	log.Info("loading model", "file", model.File)
	loadStart := time.Now()
	tr, err := transcribe.New(modelPath, transcribe.Options{
		Language: language,
		Threads:  cfg.Threads,
	})
	if err != nil {
		return err
	}
	defer tr.Close()
	log.Info("model loaded", "took", time.Since(loadStart).Round(time.Millisecond))

	outDir, err := output.PrepareDir(c.InputDir, time.Now())
	if err != nil {
		return err
	}
	log.Info("created output directory", "dir", outDir)

	p := pipeline.New(tr, pipeline.Config{
		InitialWindow: time.Duration(c.InitialDuration) * time.Second,
		MinWords:      c.MinWords,
	})
	sum := p.Run(files, output.NewWriter(outDir))

	fmt.Println()
	fmt.Printf("Done. %d file(s): %d renamed from transcript, %d fallback-named, %d skipped.\n",
		sum.Total, sum.Renamed, sum.Fallback, sum.Skipped)
	fmt.Printf("Output directory: %s\n", outDir)

	// Per-file skips are not failures; the batch is best-effort.
	return nil
}

// printBanner displays the run configuration summary.
func printBanner(c *RunCmd, model *transcribe.Model, language string, fileCount int) {
	fmt.Println("=== recnamer ===")
	fmt.Printf("  Input:     %s (%d audio files)\n", c.InputDir, fileCount)
	fmt.Printf("  Model:     %s (quant: %s) -> %s\n", c.ModelType, c.Quant, model.File)
	fmt.Printf("  Window:    %ds initial\n", c.InitialDuration)
	fmt.Printf("  Min words: %d\n", c.MinWords)
	fmt.Printf("  Language:  %s\n", language)
	fmt.Println("================")
}

// ModelsCmd groups model store subcommands.
type ModelsCmd struct {
	List     ModelsListCmd     `cmd:"" default:"withargs" help:"List the model catalog."`
	Download ModelsDownloadCmd `cmd:"" help:"Download a model file."`
}

// ModelsListCmd prints the catalog with download status.
type ModelsListCmd struct {
	Config string `name:"config" type:"path" help:"Path to YAML config file."`
}

func (c *ModelsListCmd) Run() error {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return err
	}

	fmt.Printf("Models directory: %s\n\n", cfg.ModelsDir)
	fmt.Printf("%-8s %-6s %-32s %8s\n", "TYPE", "QUANT", "FILE", "SIZE")
	for i := range transcribe.Catalog {
		m := &transcribe.Catalog[i]
		mark := " "
		if models.IsDownloaded(cfg.ModelsDir, m) {
			mark = "*"
		}
		fmt.Printf("%-8s %-6s %-32s %8s %s\n", m.Type, m.Quant, m.File, m.Size, mark)
	}
	fmt.Println("\n* = downloaded")
	return nil
}

// ModelsDownloadCmd fetches one model file from HuggingFace.
type ModelsDownloadCmd struct {
	ModelType string `name:"model_type" default:"large" help:"Whisper model type."`
	Quant     string `name:"quant" default:"none" enum:"none,4bit,8bit" help:"Model quantization."`
	Config    string `name:"config" type:"path" help:"Path to YAML config file."`
}

func (c *ModelsDownloadCmd) Run() error {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return err
	}

	model, err := transcribe.Lookup(c.ModelType, c.Quant)
	if err != nil {
		return err
	}

	path, err := models.Download(cfg.ModelsDir, model.URL(), model)
	if err != nil {
		return err
	}
	fmt.Printf("Model ready: %s\n", path)
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("recnamer %s\n", version)
	return nil
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)
	log.SetTimeFormat("15:04:05")

	ctx := kong.Parse(&cli,
		kong.Name("recnamer"),
		kong.Description("Transcribe audio recordings with whisper.cpp and rename them after what they say."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
