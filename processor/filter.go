package processor

import (
	"context"

	"github.com/MasterOfBinary/docbatch/loader"
)

// FilterFunc decides whether an item is kept. Return true to keep it.
type FilterFunc func(item *loader.Item) bool

// Filter drops items based on a predicate. Dropped items are not marked with
// an error; they simply do not reach collation.
type Filter struct {
	// Predicate returns true for items that should be kept. If nil, all
	// items pass through.
	Predicate FilterFunc

	// InvertMatch removes matching items instead of keeping them.
	InvertMatch bool
}

// Process implements the loader.Processor interface.
func (p *Filter) Process(_ context.Context, items []*loader.Item) ([]*loader.Item, error) {
	if len(items) == 0 || p.Predicate == nil {
		return items, nil
	}

	result := make([]*loader.Item, 0, len(items))
	for _, item := range items {
		keep := p.Predicate(item)
		if p.InvertMatch {
			keep = !keep
		}
		if keep {
			result = append(result, item)
		}
	}

	return result, nil
}

// SkipEmptyDocuments returns a Filter that drops documents without a single
// word.
func SkipEmptyDocuments() *Filter {
	return &Filter{
		Predicate: func(item *loader.Item) bool {
			return item.Example.Document.NumWords() > 0
		},
	}
}
