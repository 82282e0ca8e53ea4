package source_test

import "math/rand"

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
