package loader_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MasterOfBinary/docbatch/collate"
	. "github.com/MasterOfBinary/docbatch/loader"
)

// testSource emits predefined examples with an optional delay and a final
// error.
type testSource struct {
	Examples []collate.Example
	Delay    time.Duration
	WithErr  error
}

func (s *testSource) Read(ctx context.Context) (<-chan collate.Example, <-chan error) {
	out := make(chan collate.Example)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		for _, ex := range s.Examples {
			if s.Delay > 0 {
				time.Sleep(s.Delay)
			}
			select {
			case <-ctx.Done():
				return
			case out <- ex:
			}
		}
		if s.WithErr != nil {
			errs <- s.WithErr
		}
	}()
	return out, errs
}

// chanSource forwards examples sent on in. Closing in ends the read.
type chanSource struct {
	in chan collate.Example
}

func (s *chanSource) Read(ctx context.Context) (<-chan collate.Example, <-chan error) {
	errs := make(chan error)
	close(errs)
	return s.in, errs
}

// nilSource returns nil channels.
type nilSource struct{}

func (s *nilSource) Read(ctx context.Context) (<-chan collate.Example, <-chan error) {
	return nil, nil
}

// countProcessor counts items and can return a processor-wide error.
type countProcessor struct {
	count        *uint32
	processorErr error
}

func (p *countProcessor) Process(_ context.Context, items []*Item) ([]*Item, error) {
	if p.count != nil {
		atomic.AddUint32(p.count, uint32(len(items)))
	}
	return items, p.processorErr
}

// idProcessor records the IDs of the items it sees.
type idProcessor struct {
	mu  sync.Mutex
	ids []uint64
}

func (p *idProcessor) Process(_ context.Context, items []*Item) ([]*Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range items {
		p.ids = append(p.ids, item.ID)
	}
	return items, nil
}

func (p *idProcessor) take() []uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := p.ids
	p.ids = nil
	return ids
}

// failLabelProcessor marks items with the given label as failed.
type failLabelProcessor struct {
	label collate.Label
}

func (p *failLabelProcessor) Process(_ context.Context, items []*Item) ([]*Item, error) {
	for _, item := range items {
		if item.Example.Label == p.label {
			item.Error = fmt.Errorf("label %v rejected", p.label)
		}
	}
	return items, nil
}

// examples returns n single-sentence examples; example i has i+1 words and
// label i.
func examples(n int) []collate.Example {
	out := make([]collate.Example, n)
	for i := range out {
		sent := make(collate.Sentence, i+1)
		for w := range sent {
			sent[w] = w + 1
		}
		out[i] = collate.Example{Document: collate.Document{sent}, Label: collate.Label(i)}
	}
	return out
}

func mustCollator(pad int) *collate.Collator {
	c, err := collate.NewCollator(pad)
	if err != nil {
		panic(err)
	}
	return c
}
