package source

import (
	"context"

	"github.com/MasterOfBinary/docbatch/collate"
)

const defaultErrorBuffer = 10

// Error is a Source that only forwards errors from Errs and never emits an
// example. Nil errors are skipped. Error does not close Errs.
type Error struct {
	Errs <-chan error

	// BufferSize controls the size of the error buffer (default: 10).
	BufferSize int
}

// Read implements the loader.Source interface.
func (s *Error) Read(ctx context.Context) (<-chan collate.Example, <-chan error) {
	out := make(chan collate.Example)
	errs := make(chan error, bufferOrDefault(s.BufferSize, defaultErrorBuffer))

	go func() {
		defer close(out)
		defer close(errs)

		if s.Errs == nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-s.Errs:
				if !ok {
					return
				}
				if err == nil {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case errs <- err:
				}
			}
		}
	}()

	return out, errs
}
