package processor

import (
	"context"
	"errors"

	"github.com/MasterOfBinary/docbatch/loader"
)

var errDefault = errors.New("processor error")

// Error is a Processor that marks items with Err. It is meant for testing
// error handling.
type Error struct {
	// Err is set on failed items. If nil, "processor error" is used.
	Err error

	// FailFraction is the share of items in each group to fail, from 0
	// (none) to 1 (all). The first items of the group are the ones failed.
	FailFraction float64
}

// Process implements the loader.Processor interface.
func (p *Error) Process(_ context.Context, items []*loader.Item) ([]*loader.Item, error) {
	if len(items) == 0 || p.FailFraction <= 0 {
		return items, nil
	}

	err := p.Err
	if err == nil {
		err = errDefault
	}

	n := len(items)
	if p.FailFraction < 1 {
		n = int(p.FailFraction * float64(len(items)))
	}
	for _, item := range items[:n] {
		item.Error = err
	}

	return items, nil
}
