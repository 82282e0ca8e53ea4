// Package loader assembles training batches. A Loader reads examples from a
// Source, groups them according to a Config, passes each group through a
// chain of Processors and finally collates the surviving examples into a
// padded collate.Batch.
//
// Grouping follows MinTime, MinItems, MaxTime and MaxItems from Config. When
// they conflict, the following priority order is used (EOF means the Source
// is exhausted):
//
//	MaxTime = MaxItems > EOF > MinTime > MinItems
//
// For the usual fixed-size batches of a training loop, use
// NewBatchSizeConfig:
//
//	l := loader.New(loader.NewBatchSizeConfig(50), collator)
//	errs := l.Go(ctx, src, processor.SkipEmptyDocuments())
//	go func() {
//		for err := range errs {
//			log.Println(err)
//		}
//	}()
//	for b := range l.Batches() {
//		// b.Shape() == [len(b.Labels), max sentences, max words]
//	}
//
// The configuration is reloaded before each group is collected, so a
// DynamicConfig can change the batch size between batches.
//
// Batches are assembled by a bounded number of workers (see WithWorkers).
// With a single worker, the default, batches are emitted in the order their
// examples were read.
package loader
