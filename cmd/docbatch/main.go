// Command docbatch loads tokenized review corpora and assembles padded
// document batches from them.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MasterOfBinary/docbatch/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Data flags, shared by all commands
	dataPath        string
	seed            int64
	validationSplit float64
	shuffle         bool
	fraction        float64

	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docbatch",
	Short: "Assemble padded document batches from review corpora",
	Long: `docbatch reads reviews in the tokenized .ss format, splits them into
training and validation indices and groups them into padded
[batch, sentences, words] index tensors, one padding width per batch.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if cfg, err := config.Load(configPath); err == nil {
			if level, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil {
				zc.Level = zap.NewAtomicLevelAt(level)
			}
		}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.With(zap.String("run_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "docbatch.yaml", "YAML configuration file")

	rootCmd.PersistentFlags().StringVarP(&dataPath, "data-path", "d", "", "Path of the .ss dataset")
	rootCmd.PersistentFlags().Int64VarP(&seed, "random-seed", "r", 0, "Seed for shuffling and sampling")
	rootCmd.PersistentFlags().Float64Var(&validationSplit, "validation-split", 0, "Share of the data held out for validation")
	rootCmd.PersistentFlags().BoolVar(&shuffle, "shuffle", false, "Shuffle indices before splitting")
	rootCmd.PersistentFlags().Float64VarP(&fraction, "reduced-dataset", "m", 0, "Keep only the first share of the dataset indices, in (0, 1]; labels are not filtered")

	rootCmd.AddCommand(inspectCmd, splitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file and applies the flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-path") {
		cfg.Data.Path = dataPath
	}
	if flags.Changed("random-seed") {
		cfg.Data.Seed = seed
	}
	if flags.Changed("validation-split") {
		cfg.Data.ValidationSplit = validationSplit
	}
	if flags.Changed("shuffle") {
		cfg.Data.Shuffle = shuffle
	}
	if flags.Changed("reduced-dataset") {
		cfg.Data.Fraction = fraction
	}
	applyInspectFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
