package source

import (
	"context"

	"github.com/MasterOfBinary/docbatch/collate"
	"github.com/MasterOfBinary/docbatch/dataset"
	"github.com/MasterOfBinary/docbatch/sampler"
)

// Dataset is a Source that reads examples from Data in the order given by
// Sampler. The sampler is consulted once per Read, so reading the same
// Dataset again starts a new epoch.
//
// Indices that Data rejects are reported on the error channel and skipped.
type Dataset struct {
	Data    dataset.Dataset
	Sampler sampler.Sampler

	// BufferSize controls the size of the output buffer (default: 100).
	BufferSize int
}

// Read implements the loader.Source interface.
func (s *Dataset) Read(ctx context.Context) (<-chan collate.Example, <-chan error) {
	out := make(chan collate.Example, bufferOrDefault(s.BufferSize, defaultChannelBuffer))
	errs := make(chan error, defaultErrorBuffer)

	go func() {
		defer close(out)
		defer close(errs)

		for _, i := range s.Sampler.Indices() {
			ex, err := s.Data.Get(i)
			if err != nil {
				select {
				case <-ctx.Done():
					return
				case errs <- err:
				}
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- ex:
			}
		}
	}()

	return out, errs
}
