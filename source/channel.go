package source

import (
	"context"

	"github.com/MasterOfBinary/docbatch/collate"
)

const defaultChannelBuffer = 100

// Channel is a Source that forwards examples from Input until it is closed
// or the context is cancelled. Channel does not close Input.
type Channel struct {
	Input <-chan collate.Example

	// BufferSize controls the size of the output buffer (default: 100).
	BufferSize int
}

// Read implements the loader.Source interface. A nil Input yields a source
// that closes immediately.
func (s *Channel) Read(ctx context.Context) (<-chan collate.Example, <-chan error) {
	out := make(chan collate.Example, bufferOrDefault(s.BufferSize, defaultChannelBuffer))
	errs := make(chan error)

	go func() {
		defer close(out)
		defer close(errs)

		if s.Input == nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ex, ok := <-s.Input:
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- ex:
				}
			}
		}
	}()

	return out, errs
}

func bufferOrDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
