package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/MasterOfBinary/docbatch/loader"
)

// LoggingProcessor wraps another processor and logs when it starts and
// finishes, along with any error it returns.
type LoggingProcessor struct {
	Processor loader.Processor

	// Logger receives the messages. If nil, nothing is logged.
	Logger loader.Logger

	// Name is used in log messages. It defaults to the wrapped type.
	Name string
}

// Process implements the loader.Processor interface.
func (p *LoggingProcessor) Process(ctx context.Context, items []*loader.Item) ([]*loader.Item, error) {
	if p.Processor == nil {
		return items, nil
	}
	if p.Logger == nil {
		return p.Processor.Process(ctx, items)
	}

	name := p.Name
	if name == "" {
		name = fmt.Sprintf("%T", p.Processor)
	}

	start := time.Now()
	p.Logger.Debug("Processor '%s' starting with %d items", name, len(items))

	result, err := p.Processor.Process(ctx, items)

	duration := time.Since(start)
	if err != nil {
		p.Logger.Error("Processor '%s' failed after %v: %v", name, duration, err)
		return result, err
	}

	var failed int
	for _, item := range result {
		if item.Error != nil {
			failed++
		}
	}
	p.Logger.Debug("Processor '%s' completed in %v: %d items (%d successful, %d errors)",
		name, duration, len(result), len(result)-failed, failed)

	return result, nil
}

// WrapWithLogging wraps proc in a LoggingProcessor.
func WrapWithLogging(proc loader.Processor, logger loader.Logger, name string) *LoggingProcessor {
	return &LoggingProcessor{
		Processor: proc,
		Logger:    logger,
		Name:      name,
	}
}
