// Package dataset provides indexable collections of labeled documents and
// the vocabulary that maps words to the indices they are made of.
package dataset

import (
	"errors"
	"fmt"

	"github.com/MasterOfBinary/docbatch/collate"
)

// ErrIndexOutOfRange is returned by Get for an index outside [0, Len()).
var ErrIndexOutOfRange = errors.New("dataset: index out of range")

// Dataset is an indexable collection of examples.
type Dataset interface {
	// Len returns the number of examples.
	Len() int

	// Get returns example i. Implementations must be safe for concurrent
	// calls.
	Get(i int) (collate.Example, error)
}

// Memory is a Dataset backed by a slice.
type Memory struct {
	Examples []collate.Example
}

// NewMemory returns a Memory dataset holding examples.
func NewMemory(examples []collate.Example) *Memory {
	return &Memory{Examples: examples}
}

// Len implements the Dataset interface.
func (m *Memory) Len() int {
	return len(m.Examples)
}

// Get implements the Dataset interface.
func (m *Memory) Get(i int) (collate.Example, error) {
	if i < 0 || i >= len(m.Examples) {
		return collate.Example{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(m.Examples))
	}
	return m.Examples[i], nil
}

// NumClasses returns the number of distinct labels.
func (m *Memory) NumClasses() int {
	seen := make(map[collate.Label]struct{})
	for _, ex := range m.Examples {
		seen[ex.Label] = struct{}{}
	}
	return len(seen)
}
