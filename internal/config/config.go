// Package config loads the top-level YAML configuration file and fills
// in defaults for anything unset. One Config is built at startup and
// threaded down; nothing below the command layer reads files or the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quizforge/quizforge/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	LLM       llm.Config      `yaml:"llm"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Validate  ValidateConfig  `yaml:"validate"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Store     StoreConfig     `yaml:"store"`
}

// PipelineConfig bounds the orchestrator.
type PipelineConfig struct {
	MaxRetries         int           `yaml:"max_retries"`
	Workers            int           `yaml:"workers"`
	StageTimeout       time.Duration `yaml:"stage_timeout"`
	RetryBaseDelay     time.Duration `yaml:"retry_base_delay"`
	EnhancementEnabled bool          `yaml:"enhancement_enabled"`
}

// ValidateConfig bounds the validation checks.
type ValidateConfig struct {
	MaxTextLen        int     `yaml:"max_text_len"`
	MaxExplanationLen int     `yaml:"max_explanation_len"`
	MinDiversity      float64 `yaml:"min_diversity"`
}

// RetrievalConfig bounds exemplar retrieval.
type RetrievalConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	TopK    int           `yaml:"top_k"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	// Path is the database file. Empty means the default location
	// under the user data directory.
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Pipeline: PipelineConfig{
			MaxRetries:     3,
			Workers:        4,
			StageTimeout:   60 * time.Second,
			RetryBaseDelay: 500 * time.Millisecond,
		},
		Validate: ValidateConfig{
			MaxTextLen:        400,
			MaxExplanationLen: 1200,
			MinDiversity:      0.25,
		},
		Retrieval: RetrievalConfig{
			Timeout: 2 * time.Second,
			TopK:    4,
		},
	}
}

// DefaultPath returns the standard config file location, honoring
// QUIZFORGE_CONFIG and XDG_CONFIG_HOME.
func DefaultPath() string {
	if p := os.Getenv("QUIZFORGE_CONFIG"); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "quizforge.yaml"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quizforge", "config.yaml")
}

// Load reads path on top of the defaults. A missing file is not an
// error; the defaults are returned as-is. API keys are resolved from
// the environment afterward, config file values winning.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.LLM.FillFromEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.LLM.FillFromEnv()
	return cfg, nil
}
