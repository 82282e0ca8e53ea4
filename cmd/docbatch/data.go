package main

import (
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/MasterOfBinary/docbatch/dataset"
	"github.com/MasterOfBinary/docbatch/internal/config"
	"github.com/MasterOfBinary/docbatch/sampler"
)

// splitFile is the YAML form of a train/validation split.
type splitFile struct {
	Dataset         string  `yaml:"dataset"`
	Seed            int64   `yaml:"seed"`
	Shuffle         bool    `yaml:"shuffle"`
	ValidationSplit float64 `yaml:"validation_split"`
	Train           []int   `yaml:"train,flow"`
	Valid           []int   `yaml:"valid,flow"`
}

// corpus is a loaded dataset with its vocabulary and split.
type corpus struct {
	data  *dataset.Memory
	vocab *dataset.Vocabulary
	train []int
	valid []int
	rng   *rand.Rand
}

// loadCorpus reads the dataset named by cfg, freezes its vocabulary and
// splits its indices. The same rng drives the split and later sampling, so
// a seed reproduces a whole run.
func loadCorpus(cfg *config.Config) (*corpus, error) {
	vocab := dataset.NewVocabulary()
	data, err := dataset.Open(cfg.Data.Path, vocab)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	vocab.Freeze()

	n := data.Len()
	if cfg.Data.Fraction < 1 {
		n = int(cfg.Data.Fraction * float64(n))
	}

	rng := rand.New(rand.NewSource(cfg.Data.Seed))
	train, valid, err := sampler.Split(n, cfg.Data.ValidationSplit, cfg.Data.Shuffle, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to split dataset: %w", err)
	}

	logger.Info("Loaded dataset",
		zap.String("path", cfg.Data.Path),
		zap.Int("documents", data.Len()),
		zap.Int("classes", data.NumClasses()),
		zap.Int("vocabulary", vocab.Len()),
		zap.Int("train", len(train)),
		zap.Int("valid", len(valid)))

	return &corpus{data: data, vocab: vocab, train: train, valid: valid, rng: rng}, nil
}

func writeSplit(path string, s *splitFile) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal split: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write split: %w", err)
	}
	return nil
}

func readSplit(path string) (*splitFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read split: %w", err)
	}
	var s splitFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse split: %w", err)
	}
	return &s, nil
}
