package source

import (
	"context"
	"time"

	"github.com/MasterOfBinary/docbatch/collate"
)

// Nil is a Source that emits nothing. It closes its channels after Duration
// or when the context is cancelled, whichever comes first.
type Nil struct {
	Duration time.Duration
}

// Read implements the loader.Source interface.
func (s *Nil) Read(ctx context.Context) (<-chan collate.Example, <-chan error) {
	out := make(chan collate.Example)
	errs := make(chan error)

	go func() {
		defer close(out)
		defer close(errs)

		if s.Duration <= 0 {
			return
		}

		timer := time.NewTimer(s.Duration)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}()

	return out, errs
}
