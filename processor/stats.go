package processor

import (
	"context"
	"time"

	"github.com/MasterOfBinary/docbatch/loader"
)

// StatsProcessor wraps another processor and records item and error counts
// for it.
type StatsProcessor struct {
	Processor loader.Processor

	// Stats receives the metrics. If nil, nothing is recorded.
	Stats loader.StatsCollector

	// RecordAsBatch also records each call as a batch start and completion.
	RecordAsBatch bool
}

// Process implements the loader.Processor interface.
func (p *StatsProcessor) Process(ctx context.Context, items []*loader.Item) ([]*loader.Item, error) {
	if p.Processor == nil {
		return items, nil
	}
	if p.Stats == nil {
		return p.Processor.Process(ctx, items)
	}

	start := time.Now()
	if p.RecordAsBatch {
		p.Stats.RecordBatchStart(len(items))
	}

	result, err := p.Processor.Process(ctx, items)

	for _, item := range result {
		if item.Error != nil {
			p.Stats.RecordItemError()
		} else {
			p.Stats.RecordItemProcessed()
		}
	}
	if err != nil {
		p.Stats.RecordProcessorError()
	}
	if p.RecordAsBatch {
		p.Stats.RecordBatchComplete(len(result), time.Since(start))
	}

	return result, err
}

// WrapWithStats wraps proc in a StatsProcessor.
func WrapWithStats(proc loader.Processor, stats loader.StatsCollector, recordAsBatch bool) *StatsProcessor {
	return &StatsProcessor{
		Processor:     proc,
		Stats:         stats,
		RecordAsBatch: recordAsBatch,
	}
}
