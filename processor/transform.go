package processor

import (
	"context"

	"github.com/MasterOfBinary/docbatch/collate"
	"github.com/MasterOfBinary/docbatch/loader"
)

// TransformFunc returns a replacement for an example.
type TransformFunc func(ex collate.Example) (collate.Example, error)

// Transform applies Func to the example of every item that has no error yet.
type Transform struct {
	// Func is the transformation. If nil, items pass through unchanged.
	Func TransformFunc

	// ContinueOnError keeps going after a failed transformation. Failed
	// items get their Error set either way; without ContinueOnError the
	// first failure is also returned as the processor error.
	ContinueOnError bool
}

// Process implements the loader.Processor interface.
func (p *Transform) Process(_ context.Context, items []*loader.Item) ([]*loader.Item, error) {
	if len(items) == 0 || p.Func == nil {
		return items, nil
	}

	for _, item := range items {
		if item.Error != nil {
			continue
		}

		ex, err := p.Func(item.Example)
		if err != nil {
			item.Error = err
			if !p.ContinueOnError {
				return items, err
			}
			continue
		}
		item.Example = ex
	}

	return items, nil
}

// Truncate returns a TransformFunc that keeps at most maxSentences sentences
// per document and maxWords words per sentence. A limit of zero or less
// leaves that dimension alone. The input example is not modified.
func Truncate(maxSentences, maxWords int) TransformFunc {
	return func(ex collate.Example) (collate.Example, error) {
		doc := ex.Document
		if maxSentences > 0 && len(doc) > maxSentences {
			doc = doc[:maxSentences]
		}

		out := make(collate.Document, len(doc))
		for i, sent := range doc {
			if maxWords > 0 && len(sent) > maxWords {
				sent = sent[:maxWords]
			}
			out[i] = append(collate.Sentence(nil), sent...)
		}

		return collate.Example{Document: out, Label: ex.Label}, nil
	}
}
