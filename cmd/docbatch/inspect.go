package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MasterOfBinary/docbatch/collate"
	"github.com/MasterOfBinary/docbatch/embed"
	"github.com/MasterOfBinary/docbatch/internal/config"
	"github.com/MasterOfBinary/docbatch/loader"
	"github.com/MasterOfBinary/docbatch/processor"
	"github.com/MasterOfBinary/docbatch/sampler"
	"github.com/MasterOfBinary/docbatch/source"
)

var (
	batchSize        int
	numEpochs        int
	workers          int
	maxWait          time.Duration
	embeddingDim     int
	retrainEmbedding bool
	splitIn          string
	spotCheck        bool
)

// inspectCmd runs the loader over the dataset and reports every batch
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Assemble batches for every epoch and report their shapes",
	Long: `inspect loads the dataset, splits it and runs the batch loader over the
training indices in a new random order each epoch, then over the
validation indices in order. Every batch is logged with its shape, labels
and padding ratio. With --embedding-dim the batch is also gathered through
a random embedding table. With --spot-check every training batch is
followed by one batch of validation examples drawn with replacement.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0, "Documents per batch")
	inspectCmd.Flags().IntVarP(&numEpochs, "num-epochs", "e", 0, "Number of passes over the training indices")
	inspectCmd.Flags().IntVar(&workers, "workers", 0, "Batches assembled concurrently")
	inspectCmd.Flags().DurationVar(&maxWait, "max-wait", 0, "Flush a partial batch after this long")
	inspectCmd.Flags().IntVar(&embeddingDim, "embedding-dim", 0, "Gather a random embedding of this size")
	inspectCmd.Flags().BoolVarP(&retrainEmbedding, "retrain-embedding", "f", false, "Leave the embedding unfrozen")
	inspectCmd.Flags().BoolVar(&spotCheck, "spot-check", false, "Follow every training batch with a random validation batch")
	inspectCmd.Flags().StringVar(&splitIn, "split-file", "", "Reuse indices written by the split command")
}

// applyInspectFlags copies explicitly set inspect flags into cfg. Commands
// without these flags are left alone.
func applyInspectFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("batch-size") == nil {
		return
	}
	if flags.Changed("batch-size") {
		cfg.Loader.BatchSize = batchSize
	}
	if flags.Changed("num-epochs") {
		cfg.Loader.Epochs = numEpochs
	}
	if flags.Changed("workers") {
		cfg.Loader.Workers = workers
	}
	if flags.Changed("max-wait") {
		cfg.Loader.MaxWait = maxWait.String()
	}
	if flags.Changed("embedding-dim") {
		cfg.Embedding.Dim = embeddingDim
	}
	if flags.Changed("retrain-embedding") {
		cfg.Embedding.Freeze = !retrainEmbedding
	}
	if flags.Changed("spot-check") {
		cfg.Loader.SpotCheck = spotCheck
	}
}

// phase is one pass over a subset of the dataset. A phase with spot set
// follows each of its batches with a spot-check drawn from the validation
// indices.
type phase struct {
	name    string
	sampler sampler.Sampler
	spot    *rand.Rand
}

// summary counts what an inspect run produced.
type summary struct {
	batches    int
	examples   int
	errors     int
	spotChecks int
}

func (s *summary) add(o summary) {
	s.batches += o.batches
	s.examples += o.examples
	s.errors += o.errors
	s.spotChecks += o.spotChecks
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	if splitIn != "" {
		s, err := readSplit(splitIn)
		if err != nil {
			return err
		}
		c.train, c.valid = s.Train, s.Valid
		logger.Info("Using stored split", zap.String("file", splitIn),
			zap.Int("train", len(c.train)), zap.Int("valid", len(c.valid)))
	}

	collator, err := collate.NewCollator(c.vocab.Pad())
	if err != nil {
		return err
	}

	var emb *embed.Embedding
	if cfg.Embedding.Dim > 0 {
		emb, err = embed.Random(c.vocab.Len(), cfg.Embedding.Dim, c.rng)
		if err != nil {
			return err
		}
		if cfg.Embedding.Freeze {
			emb.Freeze()
		}
		logger.Info("Created embedding",
			zap.Int("vocabulary", c.vocab.Len()),
			zap.Int("dim", cfg.Embedding.Dim),
			zap.Bool("frozen", emb.Frozen()))
	}

	procs, err := buildProcessors(cfg, c.vocab.Len())
	if err != nil {
		return err
	}

	stats := loader.NewBasicStatsCollector()
	trainSampler, err := sampler.NewSubsetRandom(c.train, c.rng)
	if err != nil {
		return err
	}
	validSampler := &sampler.Sequential{Subset: c.valid}

	// The training sampler draws from c.rng on the source goroutine, so
	// spot-checks get their own generator.
	var spot *rand.Rand
	if cfg.Loader.SpotCheck {
		if len(c.valid) == 0 {
			logger.Warn("Spot-check disabled, validation split is empty")
		} else {
			spot = rand.New(rand.NewSource(c.rng.Int63()))
		}
	}

	var total summary
	for epoch := 1; epoch <= cfg.Loader.Epochs; epoch++ {
		phases := []phase{
			{name: "train", sampler: trainSampler, spot: spot},
			{name: "valid", sampler: validSampler},
		}
		for _, p := range phases {
			s, err := runPhase(ctx, cfg, c, p, epoch, collator, emb, stats, procs)
			total.add(s)
			if err != nil {
				return err
			}
		}
	}

	st := stats.GetStats()
	logger.Info("Inspection complete",
		zap.Int("epochs", cfg.Loader.Epochs),
		zap.Int("batches", total.batches),
		zap.Int("examples", total.examples),
		zap.Int("errors", total.errors),
		zap.Int("spot_checks", total.spotChecks),
		zap.Float64("padding_ratio", st.PaddingRatio()),
		zap.Duration("avg_batch_time", st.AverageBatchTime()))

	fmt.Fprintf(cmd.OutOrStdout(), "epochs=%d batches=%d examples=%d errors=%d padding=%.3f spot_checks=%d\n",
		cfg.Loader.Epochs, total.batches, total.examples, total.errors, st.PaddingRatio(), total.spotChecks)
	return nil
}

func buildProcessors(cfg *config.Config, vocabSize int) ([]loader.Processor, error) {
	zl := loader.NewZapLogger(logger)

	var procs []loader.Processor
	if cfg.Loader.SkipEmpty {
		procs = append(procs, processor.WrapWithLogging(processor.SkipEmptyDocuments(), zl, "skip-empty"))
	}
	if cfg.Loader.MaxSentences > 0 || cfg.Loader.MaxWords > 0 {
		t, err := processor.NewTransform(processor.TransformConfig{
			Func:            processor.Truncate(cfg.Loader.MaxSentences, cfg.Loader.MaxWords),
			ContinueOnError: true,
		})
		if err != nil {
			return nil, err
		}
		procs = append(procs, processor.WrapWithLogging(t, zl, "truncate"))
	}
	procs = append(procs, processor.WrapWithLogging(&processor.VocabBounds{Size: vocabSize}, zl, "vocab-bounds"))
	return procs, nil
}

func runPhase(ctx context.Context, cfg *config.Config, c *corpus, p phase, epoch int,
	collator *collate.Collator, emb *embed.Embedding, stats loader.StatsCollector, procs []loader.Processor) (summary, error) {

	src, err := source.NewDataset(source.DatasetConfig{Data: c.data, Sampler: p.sampler})
	if err != nil {
		return summary{}, err
	}

	batchConfig := loader.NewConstantConfig(&loader.ConfigValues{
		MinItems: uint64(cfg.Loader.BatchSize),
		MaxItems: uint64(cfg.Loader.BatchSize),
		MaxTime:  cfg.GetMaxWait(),
	})
	l := loader.New(batchConfig, collator).
		WithLogger(loader.NewZapLogger(logger)).
		WithStats(stats).
		WithWorkers(cfg.Loader.Workers)

	var s, spot summary
	errs := loader.Run(ctx, l, src, func(b *collate.Batch) error {
		s.batches++
		s.examples += b.Len()

		shape := b.Shape()
		fields := []zap.Field{
			zap.Int("epoch", epoch),
			zap.String("phase", p.name),
			zap.Int("batch", s.batches),
			zap.Ints("shape", shape[:]),
			zap.Ints("labels", classes(b.Labels)),
			zap.Float64("padding_ratio", b.PaddingRatio()),
		}

		switch {
		case emb == nil:
		case len(b.Data) == 0:
			logger.Debug("Skipping embedding of a batch without words",
				zap.Int("epoch", epoch), zap.String("phase", p.name), zap.Int("batch", s.batches))
		default:
			out, err := emb.Forward(b)
			if err != nil {
				return fmt.Errorf("epoch %d %s batch %d: %w", epoch, p.name, s.batches, err)
			}
			rows, cols := out.Dims()
			fields = append(fields, zap.Ints("embedded", []int{rows, cols}))
		}

		logger.Info("Batch", fields...)

		if p.spot == nil {
			return nil
		}
		check := phase{
			name:    "spot-check",
			sampler: &sampler.Sequential{Subset: sampler.Choices(c.valid, cfg.Loader.BatchSize, p.spot)},
		}
		cs, err := runPhase(ctx, cfg, c, check, epoch, collator, emb, stats, procs)
		cs.spotChecks++
		spot.add(cs)
		return err
	}, procs...)
	s.add(spot)

	for i, err := range errs {
		if i == 0 && ctx.Err() == nil && isFatal(err) {
			return s, err
		}
		s.errors++
		logger.Warn("Batch error", zap.Int("epoch", epoch), zap.String("phase", p.name), zap.Error(err))
	}
	if ctx.Err() != nil {
		return s, ctx.Err()
	}
	return s, nil
}

// isFatal reports whether err came from the batch callback rather than from
// the loader, which reports its errors wrapped.
func isFatal(err error) bool {
	switch err.(type) {
	case *loader.SourceError, *loader.ProcessorError, *loader.CollateError:
		return false
	}
	return true
}

func classes(labels []collate.Label) []int {
	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = l.Class()
	}
	return out
}
