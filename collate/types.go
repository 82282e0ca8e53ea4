package collate

// Sentence is an ordered list of word vocabulary indices.
type Sentence []int

// Document is an ordered list of sentences forming one labeled example.
type Document []Sentence

// NumWords returns the total number of words over all sentences.
func (d Document) NumWords() int {
	n := 0
	for _, s := range d {
		n += len(s)
	}
	return n
}

// Label is the target associated with a Document, such as a sentiment class
// or score.
type Label float64

// Class returns the label as an integer class index.
func (l Label) Class() int {
	return int(l)
}

// Example pairs a Document with its Label.
type Example struct {
	Document Document
	Label    Label
}
