// Package processor contains implementations of the loader.Processor
// interface that run on a group of examples before it is collated:
//
//   - Filter: drops items that fail a predicate (SkipEmptyDocuments is one)
//   - Transform: rewrites each item's example (Truncate is one)
//   - VocabBounds: fails items holding word indices outside a vocabulary
//   - Error: marks items with an error, for exercising error handling
//   - Collect: records every example that passes through
//   - Nil: passes items through after a delay
//
// LoggingProcessor and StatsProcessor wrap any of these with logging and
// metrics.
//
// Skipping empty documents the way training loops usually do:
//
//	errs := loader.Run(ctx, l, src, consume, processor.SkipEmptyDocuments())
package processor
