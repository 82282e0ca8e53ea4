package collate

// Collator pads examples into a Batch using a fixed pad token.
//
// Create one with NewCollator. The zero value has no pad token and rejects
// every call with ErrInvalidInput.
type Collator struct {
	pad    int
	hasPad bool
}

// NewCollator returns a Collator that pads with pad. The pad token must be a
// valid, non-negative vocabulary index.
func NewCollator(pad int) (*Collator, error) {
	if pad < 0 {
		return nil, newInputError("pad token must not be negative")
	}
	return &Collator{pad: pad, hasPad: true}, nil
}

// Pad returns the pad token.
func (c *Collator) Pad() int {
	return c.pad
}

// Collate pads examples into a single Batch. Documents and labels keep the
// order in which they are given.
//
// The sentence and word dimensions are the largest found in this call.
// Shorter documents are extended with sentences made only of the pad token
// and every sentence is right-padded to the batch width.
func (c *Collator) Collate(examples []Example) (*Batch, error) {
	if c == nil || !c.hasPad {
		return nil, newInputError("pad token is not set")
	}
	if len(examples) == 0 {
		return nil, newInputError("empty batch")
	}

	docs := make([]Document, len(examples))
	labels := make([]Label, len(examples))
	for i, ex := range examples {
		docs[i] = ex.Document
		labels[i] = ex.Label
	}

	r, err := NewRagged(docs)
	if err != nil {
		return nil, err
	}

	b := &Batch{
		Documents:      r.NumDocuments(),
		Sentences:      r.MaxSentences(),
		Words:          r.MaxWords(),
		Pad:            c.pad,
		Labels:         labels,
		SentenceCounts: make([]int, r.NumDocuments()),
	}
	b.WordCounts = make([]int, b.Documents*b.Sentences)
	b.Data = make([]int, b.Documents*b.Sentences*b.Words)
	if c.pad != 0 {
		for i := range b.Data {
			b.Data[i] = c.pad
		}
	}

	for d := 0; d < b.Documents; d++ {
		n := r.NumSentences(d)
		b.SentenceCounts[d] = n
		for s := 0; s < n; s++ {
			sent := r.Sentence(d, s)
			if len(sent) > b.Words {
				return nil, &ShapeError{Document: d, Sentence: s, Got: len(sent), Want: b.Words}
			}
			copy(b.Data[b.offset(d, s):], sent)
			b.WordCounts[d*b.Sentences+s] = len(sent)
		}
	}

	if err := verify(b); err != nil {
		return nil, err
	}
	return b, nil
}

// verify checks that b is rectangular: the buffer matches the shape and
// every row count fits inside the batch width.
func verify(b *Batch) error {
	if want := b.Documents * b.Sentences * b.Words; len(b.Data) != want {
		return &ShapeError{Document: -1, Sentence: -1, Got: len(b.Data), Want: want}
	}
	for i, n := range b.WordCounts {
		if n > b.Words {
			return &ShapeError{Document: i / b.Sentences, Sentence: i % b.Sentences, Got: n, Want: b.Words}
		}
	}
	return nil
}

// Collate pads examples with pad. It is shorthand for NewCollator followed
// by Collator.Collate.
func Collate(examples []Example, pad int) (*Batch, error) {
	c, err := NewCollator(pad)
	if err != nil {
		return nil, err
	}
	return c.Collate(examples)
}
