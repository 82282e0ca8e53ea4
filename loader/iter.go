package loader

import (
	"context"
	"iter"

	"github.com/MasterOfBinary/docbatch/collate"
)

// All starts l on src and returns an iterator over its output, so a run can
// be consumed with a plain range loop:
//
//	for b, err := range loader.All(ctx, l, src) {
//		if err != nil {
//			log.Print(err)
//			continue
//		}
//		...
//	}
//
// Each pair holds either a batch or an error. Breaking out of the loop
// cancels the run, and the iterator drains the remaining output before it
// returns, so no goroutines are left behind.
func All(ctx context.Context, l *Loader, src Source, procs ...Processor) iter.Seq2[*collate.Batch, error] {
	return func(yield func(*collate.Batch, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		errs := l.Go(ctx, src, procs...)
		batches := l.Batches()

		stopped := false
		for batches != nil || errs != nil {
			select {
			case b, ok := <-batches:
				if !ok {
					batches = nil
					continue
				}
				if !stopped && !yield(b, nil) {
					stopped = true
					cancel()
				}

			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				if !stopped && !yield(nil, err) {
					stopped = true
					cancel()
				}
			}
		}
	}
}
