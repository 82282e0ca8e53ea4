package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Loader.BatchSize != 50 {
		t.Errorf("expected BatchSize=50, got %d", cfg.Loader.BatchSize)
	}
	if cfg.Data.ValidationSplit != 0.2 {
		t.Errorf("expected ValidationSplit=0.2, got %v", cfg.Data.ValidationSplit)
	}
	if cfg.Data.Seed != 3 {
		t.Errorf("expected Seed=3, got %d", cfg.Data.Seed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("DOCBATCH_DATA", "")

	path := filepath.Join(t.TempDir(), "nested", "docbatch.yaml")

	cfg := Default()
	cfg.Loader.BatchSize = 8
	cfg.Loader.MaxWait = "250ms"
	cfg.Data.Shuffle = true
	cfg.Loader.SpotCheck = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Loader.BatchSize != 8 {
		t.Errorf("expected BatchSize=8, got %d", loaded.Loader.BatchSize)
	}
	if !loaded.Data.Shuffle {
		t.Error("expected Shuffle=true")
	}
	if !loaded.Loader.SpotCheck {
		t.Error("expected SpotCheck=true")
	}
	if got := loaded.GetMaxWait(); got != 250*time.Millisecond {
		t.Errorf("expected MaxWait=250ms, got %v", got)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("DOCBATCH_DATA", "")

	path := filepath.Join(t.TempDir(), "docbatch.yaml")
	if err := os.WriteFile(path, []byte("loader:\n  epochs: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Loader.Epochs != 4 {
		t.Errorf("expected Epochs=4, got %d", cfg.Loader.Epochs)
	}
	if cfg.Loader.BatchSize != 50 {
		t.Errorf("expected default BatchSize=50, got %d", cfg.Loader.BatchSize)
	}
	if cfg.Loader.SpotCheck {
		t.Error("expected spot-checks off by default")
	}
}

func TestLoad_MissingFileAndEnv(t *testing.T) {
	t.Setenv("DOCBATCH_DATA", "/tmp/reviews.ss")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.Path != "/tmp/reviews.ss" {
		t.Errorf("expected env override, got %s", cfg.Data.Path)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("loader: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty path", func(c *Config) { c.Data.Path = "" }},
		{"split of one", func(c *Config) { c.Data.ValidationSplit = 1 }},
		{"negative split", func(c *Config) { c.Data.ValidationSplit = -0.1 }},
		{"zero fraction", func(c *Config) { c.Data.Fraction = 0 }},
		{"zero batch size", func(c *Config) { c.Loader.BatchSize = 0 }},
		{"zero epochs", func(c *Config) { c.Loader.Epochs = 0 }},
		{"zero workers", func(c *Config) { c.Loader.Workers = 0 }},
		{"negative truncation", func(c *Config) { c.Loader.MaxWords = -1 }},
		{"bad max wait", func(c *Config) { c.Loader.MaxWait = "soon" }},
		{"negative dim", func(c *Config) { c.Embedding.Dim = -3 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
