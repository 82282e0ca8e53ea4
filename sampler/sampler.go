// Package sampler decides which dataset indices are visited and in what
// order. Every random decision uses a *rand.Rand passed in by the caller, so
// runs are reproducible without touching global random state.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// Sampler yields the dataset indices for one epoch.
type Sampler interface {
	// Indices returns the indices to visit, in order. Each call starts a new
	// epoch.
	Indices() []int
}

// Split divides the indices 0..n-1 into a training and a validation subset.
// The first floor(validation*n) indices form the validation subset and the
// rest the training subset. When shuffle is true the indices are permuted
// with rng first.
func Split(n int, validation float64, shuffle bool, rng *rand.Rand) (train, valid []int, err error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("sampler: negative dataset size %d", n)
	}
	if validation < 0 || validation >= 1 || math.IsNaN(validation) {
		return nil, nil, fmt.Errorf("sampler: validation split %v outside [0, 1)", validation)
	}
	if shuffle && rng == nil {
		return nil, nil, errors.New("sampler: shuffle requires a random source")
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if shuffle {
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	cut := int(math.Floor(validation * float64(n)))
	train = append([]int(nil), indices[cut:]...)
	valid = indices[:cut:cut]
	return train, valid, nil
}

// Sequential visits a fixed subset in the given order.
type Sequential struct {
	Subset []int
}

// Indices implements the Sampler interface.
func (s *Sequential) Indices() []int {
	return append([]int(nil), s.Subset...)
}

// SubsetRandom visits a subset in a new random order every epoch. Create one
// with NewSubsetRandom; the zero value visits Subset in order.
type SubsetRandom struct {
	Subset []int

	mu   sync.Mutex
	rand *rand.Rand
}

// NewSubsetRandom returns a SubsetRandom drawing permutations from rng.
func NewSubsetRandom(subset []int, rng *rand.Rand) (*SubsetRandom, error) {
	if rng == nil {
		return nil, errors.New("sampler: subset random requires a random source")
	}
	return &SubsetRandom{Subset: subset, rand: rng}, nil
}

// Indices implements the Sampler interface.
func (s *SubsetRandom) Indices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rand == nil {
		return append([]int(nil), s.Subset...)
	}

	out := make([]int, len(s.Subset))
	for i, p := range s.rand.Perm(len(s.Subset)) {
		out[i] = s.Subset[p]
	}
	return out
}

// Choices draws k indices from subset with replacement.
func Choices(subset []int, k int, rng *rand.Rand) []int {
	if len(subset) == 0 || k <= 0 {
		return nil
	}
	out := make([]int, k)
	for i := range out {
		out[i] = subset[rng.Intn(len(subset))]
	}
	return out
}
