package collate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the examples or the pad token cannot
	// be collated: an empty batch, a negative word index, or a missing pad.
	ErrInvalidInput = errors.New("collate: invalid input")

	// ErrShapeMismatch is returned when a padded batch is not rectangular.
	// It indicates a bug in the collator rather than bad input.
	ErrShapeMismatch = errors.New("collate: shape mismatch")
)

// InputError describes an input that violates the collation contract.
// Document, Sentence and Word are -1 when they do not apply.
type InputError struct {
	Document int
	Sentence int
	Word     int
	Reason   string
}

func (e *InputError) Error() string {
	switch {
	case e.Document < 0:
		return fmt.Sprintf("%v: %s", ErrInvalidInput, e.Reason)
	case e.Sentence < 0:
		return fmt.Sprintf("%v: document %d: %s", ErrInvalidInput, e.Document, e.Reason)
	case e.Word < 0:
		return fmt.Sprintf("%v: document %d sentence %d: %s", ErrInvalidInput, e.Document, e.Sentence, e.Reason)
	default:
		return fmt.Sprintf("%v: document %d sentence %d word %d: %s",
			ErrInvalidInput, e.Document, e.Sentence, e.Word, e.Reason)
	}
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func newInputError(reason string) *InputError {
	return &InputError{Document: -1, Sentence: -1, Word: -1, Reason: reason}
}

// ShapeError reports a padded batch that is not rectangular. Document and
// Sentence are -1 when the whole buffer has the wrong size.
type ShapeError struct {
	Document int
	Sentence int
	Got      int
	Want     int
}

func (e *ShapeError) Error() string {
	if e.Document < 0 {
		return fmt.Sprintf("%v: buffer has %d entries, want %d", ErrShapeMismatch, e.Got, e.Want)
	}
	return fmt.Sprintf("%v: document %d sentence %d has %d words, want %d",
		ErrShapeMismatch, e.Document, e.Sentence, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
