package sampler

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_NoShuffle(t *testing.T) {
	train, valid, err := Split(10, 0.2, false, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, valid)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, train)
}

func TestSplit_FloorsValidationSize(t *testing.T) {
	train, valid, err := Split(7, 0.2, false, nil)
	require.NoError(t, err)

	assert.Len(t, valid, 1)
	assert.Len(t, train, 6)
}

func TestSplit_ShuffleIsReproducible(t *testing.T) {
	train1, valid1, err := Split(50, 0.3, true, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	train2, valid2, err := Split(50, 0.3, true, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, valid1, valid2)

	all := append(append([]int(nil), train1...), valid1...)
	sort.Ints(all)
	for i, v := range all {
		require.Equal(t, i, v, "split must be a partition")
	}
}

func TestSplit_HalvesDoNotShareStorage(t *testing.T) {
	train, valid, err := Split(10, 0.2, false, nil)
	require.NoError(t, err)

	valid = append(valid, 99)
	assert.Equal(t, []int{0, 1, 99}, valid)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, train)
}

func TestSplit_Errors(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		validation float64
		shuffle    bool
		rng        *rand.Rand
	}{
		{"negative size", -1, 0.2, false, nil},
		{"negative split", 10, -0.1, false, nil},
		{"split of one", 10, 1, false, nil},
		{"shuffle without rng", 10, 0.2, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Split(tt.n, tt.validation, tt.shuffle, tt.rng)
			assert.Error(t, err)
		})
	}
}

func TestSequential(t *testing.T) {
	s := &Sequential{Subset: []int{4, 2, 9}}
	got := s.Indices()
	assert.Equal(t, []int{4, 2, 9}, got)

	got[0] = 100
	assert.Equal(t, 4, s.Subset[0], "Indices must return a copy")
}

func TestSubsetRandom(t *testing.T) {
	subset := []int{10, 11, 12, 13, 14, 15}
	s, err := NewSubsetRandom(subset, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	first := s.Indices()
	second := s.Indices()

	for _, epoch := range [][]int{first, second} {
		sorted := append([]int(nil), epoch...)
		sort.Ints(sorted)
		assert.Equal(t, subset, sorted)
	}

	again, err := NewSubsetRandom(subset, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, first, again.Indices())
}

func TestSubsetRandom_NilRand(t *testing.T) {
	_, err := NewSubsetRandom([]int{1, 2}, nil)
	assert.Error(t, err)

	s := &SubsetRandom{Subset: []int{7, 3, 5}}
	got := s.Indices()
	assert.Equal(t, []int{7, 3, 5}, got)

	got[0] = 0
	assert.Equal(t, 7, s.Subset[0])
}

func TestChoices(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	subset := []int{3, 5, 8}

	got := Choices(subset, 20, rng)
	require.Len(t, got, 20)
	for _, v := range got {
		assert.Contains(t, subset, v)
	}

	assert.Nil(t, Choices(nil, 3, rng))
	assert.Nil(t, Choices(subset, 0, rng))
}
