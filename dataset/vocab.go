package dataset

import (
	"sync"

	"github.com/MasterOfBinary/docbatch/collate"
)

// Reserved vocabulary keys. They always occupy the first two indices.
const (
	PadKey     = "<pad>"
	UnknownKey = "<unk>"
)

// Vocabulary maps words to indices. The pad key is index 0 and the unknown
// key is index 1. The zero value is ready to use. It is safe for concurrent
// use.
type Vocabulary struct {
	once   sync.Once
	mu     sync.RWMutex
	index  map[string]int
	words  []string
	frozen bool
}

// NewVocabulary returns a Vocabulary holding only the reserved keys.
func NewVocabulary() *Vocabulary {
	v := &Vocabulary{}
	v.once.Do(v.reserve)
	return v
}

func (v *Vocabulary) reserve() {
	v.index = make(map[string]int)
	v.add(PadKey)
	v.add(UnknownKey)
}

// Freeze stops Add from growing the vocabulary. Unseen words then map to
// the unknown key.
func (v *Vocabulary) Freeze() {
	v.once.Do(v.reserve)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frozen = true
}

// Frozen reports whether the vocabulary has been frozen.
func (v *Vocabulary) Frozen() bool {
	v.once.Do(v.reserve)
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.frozen
}

// Add returns the index of word, assigning the next free index when the word
// is new and the vocabulary is not frozen.
func (v *Vocabulary) Add(word string) int {
	v.once.Do(v.reserve)
	v.mu.Lock()
	defer v.mu.Unlock()
	if i, ok := v.index[word]; ok {
		return i
	}
	if v.frozen {
		return v.index[UnknownKey]
	}
	return v.add(word)
}

func (v *Vocabulary) add(word string) int {
	i := len(v.words)
	v.index[word] = i
	v.words = append(v.words, word)
	return i
}

// Index returns the index of word and whether it is known.
func (v *Vocabulary) Index(word string) (int, bool) {
	v.once.Do(v.reserve)
	v.mu.RLock()
	defer v.mu.RUnlock()
	i, ok := v.index[word]
	return i, ok
}

// Word returns the word at index i, or the empty string if i is unknown.
func (v *Vocabulary) Word(i int) string {
	v.once.Do(v.reserve)
	v.mu.RLock()
	defer v.mu.RUnlock()
	if i < 0 || i >= len(v.words) {
		return ""
	}
	return v.words[i]
}

// Pad returns the pad token.
func (v *Vocabulary) Pad() int {
	i, _ := v.Index(PadKey)
	return i
}

// Len returns the number of words, including the reserved keys.
func (v *Vocabulary) Len() int {
	v.once.Do(v.reserve)
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.words)
}

// Encode converts words to a Sentence, adding new words unless the
// vocabulary is frozen.
func (v *Vocabulary) Encode(words []string) collate.Sentence {
	s := make(collate.Sentence, len(words))
	for i, w := range words {
		s[i] = v.Add(w)
	}
	return s
}
