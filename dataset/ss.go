package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MasterOfBinary/docbatch/collate"
)

const (
	ssFieldSeparator    = "\t\t"
	ssSentenceSeparator = "<sssss>"
	ssMaxLineBytes      = 16 * 1024 * 1024
)

// ParseError reports a malformed line in an .ss file.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: line %d: %s", e.Line, e.Reason)
}

// ReadSS parses reviews in the tokenized .ss format used by the IMDB and
// Yelp document sentiment corpora. Each non-empty line has four fields
// separated by two tabs:
//
//	user \t\t product \t\t rating \t\t sentence <sssss> sentence ...
//
// Words within a sentence are separated by whitespace. The label of each
// review is its rating minus one, so ratings 1..10 become classes 0..9.
// Words are added to vocab unless it is frozen.
func ReadSS(r io.Reader, vocab *Vocabulary) (*Memory, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), ssMaxLineBytes)

	var examples []collate.Example
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.SplitN(text, ssFieldSeparator, 4)
		if len(fields) != 4 {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("expected 4 fields, got %d", len(fields))}
		}

		rating, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("invalid rating %q", fields[2])}
		}
		if rating < 1 {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("rating %d is below 1", rating)}
		}

		var doc collate.Document
		for _, raw := range strings.Split(fields[3], ssSentenceSeparator) {
			words := strings.Fields(raw)
			if len(words) == 0 {
				continue
			}
			doc = append(doc, vocab.Encode(words))
		}

		examples = append(examples, collate.Example{
			Document: doc,
			Label:    collate.Label(rating - 1),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read line %d: %w", line+1, err)
	}

	return NewMemory(examples), nil
}

// Open reads the .ss file at path with ReadSS.
func Open(path string, vocab *Vocabulary) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSS(f, vocab)
}
