// Package config holds the run configuration. Batch parameters (model
// type, quantization, durations) come from the command line; this file
// covers the environment-level settings that rarely change between
// runs and can live in a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Config holds environment configuration.
type Config struct {
	ModelsDir string `yaml:"models_dir"` // where ggml model files live
	Threads   uint   `yaml:"threads"`    // whisper inference threads, 0 = auto
	Language  string `yaml:"language"`   // default language code, "auto" = detect
	LogLevel  string `yaml:"log_level"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "recnamer")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultModelsDir returns the default directory for model files.
func DefaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(home, ".local", "share", "recnamer", "models")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		ModelsDir: DefaultModelsDir(),
		Threads:   0,
		Language:  "auto",
		LogLevel:  "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in models_dir is expanded to the user's
// home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ModelsDir = expandTilde(cfg.ModelsDir)

	return cfg, nil
}

// LoadOrDefault loads the config at path when given, else the default
// config path when it exists, else built-in defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	defaultPath := DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Debug("config loaded", "path", defaultPath)
		return cfg, nil
	}

	return Default(), nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.ModelsDir == "" {
		return fmt.Errorf("models_dir must not be empty")
	}

	if c.Language == "" {
		return fmt.Errorf("language must not be empty (use \"auto\" for detection)")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// ParseLogLevel maps a config log level string to a log.Level,
// defaulting to info for unknown values.
func ParseLogLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
