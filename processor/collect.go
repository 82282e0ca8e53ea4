package processor

import (
	"context"
	"sync"

	"github.com/MasterOfBinary/docbatch/collate"
	"github.com/MasterOfBinary/docbatch/loader"
)

// Collect records the examples of all items without an error. It is safe
// for concurrent use since Process may run on several workers.
type Collect struct {
	mu       sync.Mutex
	examples []collate.Example
}

// Process implements the loader.Processor interface.
func (c *Collect) Process(_ context.Context, items []*loader.Item) ([]*loader.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		if item.Error == nil {
			c.examples = append(c.examples, item.Example)
		}
	}
	return items, nil
}

// Examples returns a copy of the examples recorded so far.
func (c *Collect) Examples() []collate.Example {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]collate.Example(nil), c.examples...)
}

// Reset clears the recorded examples.
func (c *Collect) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.examples = nil
}
