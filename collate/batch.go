package collate

// Batch is a padded, rectangular block of documents.
//
// Data holds the word indices in row-major order with shape
// [Documents, Sentences, Words]. Labels[i] belongs to document i.
// SentenceCounts[i] is the number of real sentences in document i and
// WordCounts[i*Sentences+s] is the number of real words in sentence s of
// document i (zero for padding sentences).
type Batch struct {
	Data           []int
	Documents      int
	Sentences      int
	Words          int
	Pad            int
	Labels         []Label
	SentenceCounts []int
	WordCounts     []int
}

// Shape returns the batch dimensions as [documents, sentences, words].
func (b *Batch) Shape() [3]int {
	return [3]int{b.Documents, b.Sentences, b.Words}
}

// Len returns the number of documents in the batch.
func (b *Batch) Len() int {
	return b.Documents
}

// At returns the word index at document d, sentence s, position w.
func (b *Batch) At(d, s, w int) int {
	return b.Data[b.offset(d, s)+w]
}

// Row returns the padded sentence s of document d. The slice aliases the
// batch data.
func (b *Batch) Row(d, s int) []int {
	off := b.offset(d, s)
	return b.Data[off : off+b.Words : off+b.Words]
}

// Document returns a copy of document d as padded rows.
func (b *Batch) Document(d int) [][]int {
	rows := make([][]int, b.Sentences)
	for s := range rows {
		rows[s] = append([]int(nil), b.Row(d, s)...)
	}
	return rows
}

// Mask reports, for every position in Data, whether it holds a real word
// rather than padding.
func (b *Batch) Mask() []bool {
	mask := make([]bool, len(b.Data))
	for d := 0; d < b.Documents; d++ {
		for s := 0; s < b.Sentences; s++ {
			n := b.WordCounts[d*b.Sentences+s]
			off := b.offset(d, s)
			for w := 0; w < n; w++ {
				mask[off+w] = true
			}
		}
	}
	return mask
}

// RealTokens returns the number of non-padding positions.
func (b *Batch) RealTokens() int {
	n := 0
	for _, c := range b.WordCounts {
		n += c
	}
	return n
}

// PaddingRatio returns the fraction of positions that are padding.
func (b *Batch) PaddingRatio() float64 {
	if len(b.Data) == 0 {
		return 0
	}
	return float64(len(b.Data)-b.RealTokens()) / float64(len(b.Data))
}

func (b *Batch) offset(d, s int) int {
	return (d*b.Sentences + s) * b.Words
}
