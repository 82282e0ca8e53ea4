package loader

import (
	"context"
	"sync"

	"github.com/MasterOfBinary/docbatch/collate"
)

// IgnoreErrors drains errs in the background. The error channel returned by
// Go must be read, so use this when errors are not needed:
//
//	loader.IgnoreErrors(l.Go(ctx, src))
//	for b := range l.Batches() {
//		...
//	}
func IgnoreErrors(errs <-chan error) {
	if errs == nil {
		return
	}
	go func() {
		for range errs {
		}
	}()
}

// CollectErrors reads errs until it is closed and returns everything
// received.
func CollectErrors(errs <-chan error) []error {
	var out []error
	for err := range errs {
		out = append(out, err)
	}
	return out
}

// BatchFunc consumes one collated batch.
type BatchFunc func(b *collate.Batch) error

// Run starts l on src, calls fn for every batch in the order they are
// emitted and returns every error reported during the run.
//
// If fn returns an error, the run is cancelled, the remaining batches are
// discarded and fn's error is the first element of the result.
func Run(ctx context.Context, l *Loader, src Source, fn BatchFunc, procs ...Processor) []error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := l.Go(ctx, src, procs...)

	var (
		wg        sync.WaitGroup
		collected []error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		collected = CollectErrors(errs)
	}()

	var fnErr error
	for b := range l.Batches() {
		if fnErr != nil {
			continue
		}
		if err := fn(b); err != nil {
			fnErr = err
			cancel()
		}
	}
	wg.Wait()

	if fnErr != nil {
		collected = append([]error{fnErr}, collected...)
	}
	return collected
}
