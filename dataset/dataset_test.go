package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterOfBinary/docbatch/collate"
)

func TestVocabulary_Reserved(t *testing.T) {
	v := NewVocabulary()

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 0, v.Pad())

	i, ok := v.Index(UnknownKey)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, PadKey, v.Word(0))
	assert.Equal(t, "", v.Word(42))
}

func TestVocabulary_ZeroValue(t *testing.T) {
	var v Vocabulary

	assert.Equal(t, 0, v.Pad())
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, UnknownKey, v.Word(1))
	assert.Equal(t, 2, v.Add("fine"))
	assert.Equal(t, collate.Sentence{2, 3}, v.Encode([]string{"fine", "odd"}))
}

func TestVocabulary_AddAndFreeze(t *testing.T) {
	v := NewVocabulary()

	assert.Equal(t, 2, v.Add("good"))
	assert.Equal(t, 3, v.Add("movie"))
	assert.Equal(t, 2, v.Add("good"))

	v.Freeze()
	assert.True(t, v.Frozen())
	assert.Equal(t, 1, v.Add("terrible"))
	assert.Equal(t, 4, v.Len())

	assert.Equal(t, collate.Sentence{2, 1, 3}, v.Encode([]string{"good", "bad", "movie"}))
}

func TestVocabulary_ConcurrentAdd(t *testing.T) {
	v := NewVocabulary()
	words := []string{"a", "b", "c", "d", "e"}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Encode(words)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2+len(words), v.Len())
}

func TestMemory_Get(t *testing.T) {
	m := NewMemory([]collate.Example{
		{Document: collate.Document{{2}}, Label: 0},
		{Document: collate.Document{{3}}, Label: 1},
		{Document: collate.Document{{4}}, Label: 1},
	})

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.NumClasses())

	ex, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, collate.Label(1), ex.Label)

	_, err = m.Get(3)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = m.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

const ssSample = "u1\t\tp1\t\t8\t\tgreat movie . <sssss> loved it\n" +
	"\n" +
	"u2\t\tp2\t\t1\t\tawful <sssss>  <sssss> just awful\r\n"

func TestReadSS(t *testing.T) {
	v := NewVocabulary()
	m, err := ReadSS(strings.NewReader(ssSample), v)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	first, _ := m.Get(0)
	assert.Equal(t, collate.Label(7), first.Label)
	require.Len(t, first.Document, 2)
	assert.Len(t, first.Document[0], 3)
	assert.Len(t, first.Document[1], 2)

	second, _ := m.Get(1)
	assert.Equal(t, collate.Label(0), second.Label)
	require.Len(t, second.Document, 2, "blank sentences are dropped")

	awful, ok := v.Index("awful")
	require.True(t, ok)
	assert.Equal(t, collate.Sentence{awful}, second.Document[0])
	assert.Equal(t, collate.Sentence{v.Add("just"), awful}, second.Document[1])
}

func TestReadSS_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"missing fields", "u\t\tp\t\t3\n", 1},
		{"bad rating", "u\t\tp\t\tx\t\ttext\n", 1},
		{"zero rating", "u\t\tp\t\t1\t\tok\nu\t\tp\t\t0\t\ttext\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSS(strings.NewReader(tt.input), NewVocabulary())
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.txt.ss")
	require.NoError(t, os.WriteFile(path, []byte(ssSample), 0o644))

	m, err := Open(path, NewVocabulary())
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	_, err = Open(filepath.Join(t.TempDir(), "missing.ss"), NewVocabulary())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
