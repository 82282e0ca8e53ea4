package processor

import (
	"context"
	"fmt"

	"github.com/MasterOfBinary/docbatch/loader"
)

// VocabBounds marks items whose documents reference a word index outside
// [0, Size) with an error. A Size of zero or less disables the check.
//
// Collation accepts any non-negative index, so this catches examples that
// would overflow an embedding table before they reach it.
type VocabBounds struct {
	Size int
}

// Process implements the loader.Processor interface.
func (p *VocabBounds) Process(_ context.Context, items []*loader.Item) ([]*loader.Item, error) {
	if p.Size <= 0 {
		return items, nil
	}

	for _, item := range items {
		if item.Error != nil {
			continue
		}
	doc:
		for s, sent := range item.Example.Document {
			for w, idx := range sent {
				if idx < 0 || idx >= p.Size {
					item.Error = fmt.Errorf("item %d: sentence %d word %d: index %d outside vocabulary of size %d",
						item.ID, s, w, idx, p.Size)
					break doc
				}
			}
		}
	}

	return items, nil
}
