// Package embed gathers word vectors for collated batches.
//
// An Embedding holds a [vocab, dim] weight matrix. Forward turns the padded
// index buffer of a collate.Batch into one row per position, in the same
// row-major order as the buffer, so position (d, s, w) of the batch is row
// (d*Sentences+s)*Words+w of the result. Padding positions gather the pad
// token's row like any other index.
package embed

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/MasterOfBinary/docbatch/collate"
)

var (
	// ErrOutOfVocabulary is returned for an index outside the weight
	// matrix.
	ErrOutOfVocabulary = errors.New("embed: index out of vocabulary")

	// ErrFrozen is returned when modifying a frozen Embedding.
	ErrFrozen = errors.New("embed: embedding is frozen")

	// ErrEmptyBatch is returned by Forward for a batch with no positions.
	ErrEmptyBatch = errors.New("embed: batch has no positions")
)

// Embedding maps word indices to rows of a weight matrix. It is safe for
// concurrent reads; SetRow must not race with Lookup or Forward.
type Embedding struct {
	weights *mat.Dense
	frozen  bool
}

// New wraps weights, which must have at least one row and one column. A
// frozen Embedding rejects SetRow.
func New(weights *mat.Dense, frozen bool) (*Embedding, error) {
	if weights == nil || weights.IsEmpty() {
		return nil, errors.New("embed: weights cannot be empty")
	}
	return &Embedding{weights: weights, frozen: frozen}, nil
}

// Random returns an unfrozen Embedding with weights drawn from the standard
// normal distribution.
func Random(vocab, dim int, rng *rand.Rand) (*Embedding, error) {
	if vocab <= 0 || dim <= 0 {
		return nil, fmt.Errorf("embed: invalid size %dx%d", vocab, dim)
	}
	if rng == nil {
		return nil, errors.New("embed: rng cannot be nil")
	}

	data := make([]float64, vocab*dim)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return &Embedding{weights: mat.NewDense(vocab, dim, data)}, nil
}

// Dims returns the vocabulary size and vector dimension.
func (e *Embedding) Dims() (vocab, dim int) {
	return e.weights.Dims()
}

// Freeze fixes the weights. It cannot be undone.
func (e *Embedding) Freeze() {
	e.frozen = true
}

// Frozen reports whether the weights are fixed.
func (e *Embedding) Frozen() bool {
	return e.frozen
}

// Lookup returns the vector for id. The result shares storage with the
// weights.
func (e *Embedding) Lookup(id int) (mat.Vector, error) {
	if err := e.check(id); err != nil {
		return nil, err
	}
	return e.weights.RowView(id), nil
}

// SetRow replaces the vector for id.
func (e *Embedding) SetRow(id int, v []float64) error {
	if e.frozen {
		return ErrFrozen
	}
	if err := e.check(id); err != nil {
		return err
	}
	if _, dim := e.weights.Dims(); len(v) != dim {
		return fmt.Errorf("embed: row has %d values, want %d", len(v), dim)
	}
	e.weights.SetRow(id, v)
	return nil
}

// Forward gathers one row per position of b into a
// [Documents*Sentences*Words, dim] matrix.
func (e *Embedding) Forward(b *collate.Batch) (*mat.Dense, error) {
	if b == nil || len(b.Data) == 0 {
		return nil, ErrEmptyBatch
	}
	for i, id := range b.Data {
		if err := e.check(id); err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
	}

	_, dim := e.weights.Dims()
	out := mat.NewDense(len(b.Data), dim, nil)
	for i, id := range b.Data {
		out.SetRow(i, e.weights.RawRowView(id))
	}
	return out, nil
}

// DocumentMeans averages the vectors of every real word in each document of
// b, ignoring padding, and returns a [Documents, dim] matrix. Documents
// without words get a zero row.
func (e *Embedding) DocumentMeans(b *collate.Batch) (*mat.Dense, error) {
	if b == nil || b.Documents == 0 {
		return nil, ErrEmptyBatch
	}

	_, dim := e.weights.Dims()
	out := mat.NewDense(b.Documents, dim, nil)
	sum := mat.NewVecDense(dim, nil)

	for d := 0; d < b.Documents; d++ {
		sum.Zero()
		n := 0
		for s := 0; s < b.Sentences; s++ {
			for _, id := range b.Row(d, s)[:b.WordCounts[d*b.Sentences+s]] {
				v, err := e.Lookup(id)
				if err != nil {
					return nil, fmt.Errorf("document %d sentence %d: %w", d, s, err)
				}
				sum.AddVec(sum, v)
				n++
			}
		}
		if n > 0 {
			sum.ScaleVec(1/float64(n), sum)
		}
		out.SetRow(d, sum.RawVector().Data)
	}
	return out, nil
}

func (e *Embedding) check(id int) error {
	if vocab, _ := e.weights.Dims(); id < 0 || id >= vocab {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfVocabulary, id, vocab)
	}
	return nil
}
