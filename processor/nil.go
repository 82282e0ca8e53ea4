package processor

import (
	"context"
	"time"

	"github.com/MasterOfBinary/docbatch/loader"
)

// Nil passes items through unchanged after Duration. It returns early with
// the context error if ctx is done first.
type Nil struct {
	Duration time.Duration
}

// Process implements the loader.Processor interface.
func (p *Nil) Process(ctx context.Context, items []*loader.Item) ([]*loader.Item, error) {
	if p.Duration <= 0 {
		return items, nil
	}

	timer := time.NewTimer(p.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return items, ctx.Err()
	case <-timer.C:
		return items, nil
	}
}
