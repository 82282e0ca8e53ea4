// Package source contains implementations of the loader.Source interface:
//
//   - Dataset: reads examples from a dataset.Dataset in sampler order
//   - Channel: forwards examples from an existing channel
//   - Error: emits only errors, for exercising error handling
//   - Nil: emits nothing and closes after a delay
//
// Every source closes both of its channels when it is finished or when the
// context is cancelled.
//
// One epoch over a training split:
//
//	smp, err := sampler.NewSubsetRandom(train, rng)
//	if err != nil {
//		// handle error
//	}
//	src, err := source.NewDataset(source.DatasetConfig{Data: data, Sampler: smp})
//	if err != nil {
//		// handle error
//	}
//	errs := loader.Run(ctx, l, src, consume)
package source
