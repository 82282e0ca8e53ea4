package collate

// Ragged stores a list of documents in three flat buffers: every word of
// every sentence back to back, the offset of each sentence into the words,
// and the offset of each document into the sentences.
//
//	sentence k      = words[sentences[k]:sentences[k+1]]
//	document d      = sentences docs[d] .. docs[d+1]-1
type Ragged struct {
	words     []int
	sentences []int
	docs      []int

	maxSentences int
	maxWords     int
}

// NewRagged flattens docs into a Ragged. It fails with an *InputError if any
// word index is negative.
func NewRagged(docs []Document) (*Ragged, error) {
	numSentences, numWords := 0, 0
	for _, d := range docs {
		numSentences += len(d)
		numWords += d.NumWords()
	}

	r := &Ragged{
		words:     make([]int, 0, numWords),
		sentences: make([]int, 1, numSentences+1),
		docs:      make([]int, 1, len(docs)+1),
	}

	for di, d := range docs {
		if len(d) > r.maxSentences {
			r.maxSentences = len(d)
		}
		for si, s := range d {
			if len(s) > r.maxWords {
				r.maxWords = len(s)
			}
			for wi, w := range s {
				if w < 0 {
					return nil, &InputError{
						Document: di,
						Sentence: si,
						Word:     wi,
						Reason:   "negative word index",
					}
				}
			}
			r.words = append(r.words, s...)
			r.sentences = append(r.sentences, len(r.words))
		}
		r.docs = append(r.docs, len(r.sentences)-1)
	}

	return r, nil
}

// NumDocuments returns the number of documents.
func (r *Ragged) NumDocuments() int {
	return len(r.docs) - 1
}

// NumSentences returns the number of sentences in document d.
func (r *Ragged) NumSentences(d int) int {
	return r.docs[d+1] - r.docs[d]
}

// Sentence returns sentence s of document d. The returned slice aliases the
// Ragged buffer and must not be modified.
func (r *Ragged) Sentence(d, s int) Sentence {
	k := r.docs[d] + s
	return r.words[r.sentences[k]:r.sentences[k+1]]
}

// MaxSentences returns the largest sentence count of any document.
func (r *Ragged) MaxSentences() int {
	return r.maxSentences
}

// MaxWords returns the largest word count of any sentence.
func (r *Ragged) MaxWords() int {
	return r.maxWords
}

// NumWords returns the total number of words stored.
func (r *Ragged) NumWords() int {
	return len(r.words)
}
