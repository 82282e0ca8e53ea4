// Package config holds the docbatch run configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all docbatch configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Loader    LoaderConfig    `yaml:"loader"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DataConfig selects the dataset and how it is split.
type DataConfig struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"` // used in output file names

	ValidationSplit float64 `yaml:"validation_split"`
	Shuffle         bool    `yaml:"shuffle"`
	Seed            int64   `yaml:"seed"`

	// Fraction keeps only the first share of the indices, in (0, 1].
	Fraction float64 `yaml:"fraction"`
}

// LoaderConfig configures batch assembly.
type LoaderConfig struct {
	BatchSize int    `yaml:"batch_size"`
	Epochs    int    `yaml:"epochs"`
	Workers   int    `yaml:"workers"`
	MaxWait   string `yaml:"max_wait"` // flush a partial batch after this long, "0s" waits forever

	SkipEmpty    bool `yaml:"skip_empty"`
	MaxSentences int  `yaml:"max_sentences"` // 0 keeps every sentence
	MaxWords     int  `yaml:"max_words"`     // 0 keeps every word

	// SpotCheck runs a batch of randomly drawn validation examples after
	// every training batch.
	SpotCheck bool `yaml:"spot_check"`
}

// EmbeddingConfig configures the optional embedding gather.
type EmbeddingConfig struct {
	Dim    int  `yaml:"dim"` // 0 disables the gather
	Freeze bool `yaml:"freeze"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:            "data/imdb-dev.txt.ss",
			Name:            "imdb",
			ValidationSplit: 0.2,
			Shuffle:         false,
			Seed:            3,
			Fraction:        1,
		},
		Loader: LoaderConfig{
			BatchSize: 50,
			Epochs:    1,
			Workers:   1,
			MaxWait:   "0s",
			SkipEmpty: true,
		},
		Embedding: EmbeddingConfig{
			Dim:    0,
			Freeze: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults. A
// missing file yields the defaults; DOCBATCH_DATA overrides Data.Path.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("DOCBATCH_DATA"); path != "" {
		c.Data.Path = path
	}
}

// GetMaxWait returns Loader.MaxWait as a duration, zero if unset or invalid.
func (c *Config) GetMaxWait() time.Duration {
	d, err := time.ParseDuration(c.Loader.MaxWait)
	if err != nil {
		return 0
	}
	return d
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data path not configured")
	}
	if c.Data.ValidationSplit < 0 || c.Data.ValidationSplit >= 1 {
		return fmt.Errorf("validation split %v outside [0, 1)", c.Data.ValidationSplit)
	}
	if c.Data.Fraction <= 0 || c.Data.Fraction > 1 {
		return fmt.Errorf("data fraction %v outside (0, 1]", c.Data.Fraction)
	}
	if c.Loader.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.Loader.BatchSize)
	}
	if c.Loader.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Loader.Epochs)
	}
	if c.Loader.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Loader.Workers)
	}
	if c.Loader.MaxSentences < 0 || c.Loader.MaxWords < 0 {
		return fmt.Errorf("truncation limits cannot be negative")
	}
	if _, err := time.ParseDuration(c.Loader.MaxWait); err != nil {
		return fmt.Errorf("invalid max wait %q: %w", c.Loader.MaxWait, err)
	}
	if c.Embedding.Dim < 0 {
		return fmt.Errorf("embedding dim cannot be negative, got %d", c.Embedding.Dim)
	}

	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			return nil
		}
	}
	return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
}
