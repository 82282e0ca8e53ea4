package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var splitOut string

// splitCmd writes the train/validation split so later runs can reuse it
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Compute the train/validation split and write it as YAML",
	Args:  cobra.NoArgs,
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitOut, "out", "o", "", "Output file (default: <data-name>-split.yaml)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	out := splitOut
	if out == "" {
		out = cfg.Data.Name + "-split.yaml"
	}

	err = writeSplit(out, &splitFile{
		Dataset:         cfg.Data.Path,
		Seed:            cfg.Data.Seed,
		Shuffle:         cfg.Data.Shuffle,
		ValidationSplit: cfg.Data.ValidationSplit,
		Train:           c.train,
		Valid:           c.valid,
	})
	if err != nil {
		return err
	}

	logger.Info("Wrote split", zap.String("file", out))
	fmt.Fprintf(cmd.OutOrStdout(), "train=%d valid=%d file=%s\n", len(c.train), len(c.valid), out)
	return nil
}
