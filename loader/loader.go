package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MasterOfBinary/docbatch/collate"
)

// closedChan is returned by Done before Go has been called, so callers
// never block on a nil channel.
var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// closedBatches is returned by Batches before Go has been called.
var closedBatches = func() chan *collate.Batch {
	ch := make(chan *collate.Batch)
	close(ch)
	return ch
}()

// BufferConfig sets the sizes of the channels used by a Loader. Zero or
// negative values select the defaults.
type BufferConfig struct {
	ItemBufferSize  int
	IDBufferSize    int
	ErrorBufferSize int
	BatchBufferSize int
}

// Item is a single example travelling through the processor chain.
type Item struct {
	// ID is unique per Go call and must not be modified by processors.
	ID uint64

	// Example is the document and label. Processors may replace it.
	Example collate.Example

	// Error marks the item as failed. Failed items are reported and left
	// out of collation.
	Error error
}

// Source produces the examples a Loader batches.
type Source interface {
	// Read returns a channel of examples and a channel of errors. Both must
	// be non-nil and both must be closed when reading is finished or ctx is
	// done.
	Read(ctx context.Context) (<-chan collate.Example, <-chan error)
}

// Processor transforms a group of items before collation. Processors can
// drop items, replace their examples or mark them with per-item errors.
type Processor interface {
	// Process returns the items to pass on and a processor-wide error, if
	// any. It should honor ctx cancellation.
	Process(ctx context.Context, items []*Item) ([]*Item, error)
}

// Loader reads examples from a Source, groups them, runs them through
// Processors and collates each group into a padded batch.
//
// Create one with New. After Go, collated batches arrive on Batches and all
// errors arrive on the channel Go returned. Source errors are wrapped in
// *SourceError, processor and per-item errors in *ProcessorError and
// collation failures in *CollateError.
//
// Both channels must be drained. Run does this for the common case.
type Loader struct {
	config       Config
	collator     *collate.Collator
	bufferConfig BufferConfig
	logger       Logger
	stats        StatsCollector
	workers      int

	mu      sync.Mutex
	running bool
	errs    chan error
	batches chan *collate.Batch
	done    chan struct{}
}

// run is the state of a single Go call. Its goroutines only touch run, so a
// finished Loader can start another run without racing the previous one.
type run struct {
	config     Config
	collator   *collate.Collator
	logger     Logger
	stats      StatsCollector
	workers    int
	src        Source
	processors []Processor

	items   chan *Item
	ids     chan uint64
	errs    chan error
	batches chan *collate.Batch
	done    chan struct{}

	// finish closes the output channels and marks the Loader idle.
	finish func()
}

// New creates a Loader that groups examples according to config and pads
// them with collator. A nil config collates every example on its own.
func New(config Config, collator *collate.Collator) *Loader {
	return &Loader{
		config:   config,
		collator: collator,
	}
}

// WithBufferConfig sets custom channel sizes. It panics if called while Go
// is running.
func (l *Loader) WithBufferConfig(config BufferConfig) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mustNotRun("WithBufferConfig")
	l.bufferConfig = config
	return l
}

// WithLogger sets the Logger. Without one nothing is logged. It panics if
// called while Go is running.
func (l *Loader) WithLogger(logger Logger) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mustNotRun("WithLogger")
	l.logger = logger
	return l
}

// WithStats sets the StatsCollector. It panics if called while Go is
// running.
func (l *Loader) WithStats(stats StatsCollector) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mustNotRun("WithStats")
	l.stats = stats
	return l
}

// WithWorkers sets how many batches may be processed and collated at the
// same time. With more than one worker, batches may be emitted out of read
// order. It panics if called while Go is running.
func (l *Loader) WithWorkers(n int) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mustNotRun("WithWorkers")
	l.workers = n
	return l
}

func (l *Loader) mustNotRun(method string) {
	if l.running {
		panic("loader: " + method + " cannot be called after Go() has started")
	}
}

// Go starts reading from s asynchronously and returns the error channel,
// which is closed once every batch has been emitted or dropped.
//
// Cancelling ctx stops the Source; examples already read are still
// processed, but batches that nobody receives any more are dropped.
//
// Calling Go while a previous run is still active panics.
func (l *Loader) Go(ctx context.Context, s Source, procs ...Processor) <-chan error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		panic("loader: concurrent calls to Go are not allowed")
	}

	if l.config == nil {
		l.config = NewConstantConfig(nil)
	}
	if l.logger == nil {
		l.logger = &NoOpLogger{}
	}
	if l.stats == nil {
		l.stats = &NoOpStatsCollector{}
	}
	if l.workers <= 0 {
		l.workers = DefaultWorkers
	}

	l.running = true

	var startErr error
	switch {
	case s == nil:
		startErr = errors.New("loader: source cannot be nil")
	case l.collator == nil:
		startErr = errors.New("loader: collator cannot be nil")
	}
	if startErr != nil {
		l.errs = make(chan error, 1)
		l.batches = make(chan *collate.Batch)
		l.done = make(chan struct{})
		l.errs <- startErr
		close(l.errs)
		close(l.batches)
		close(l.done)
		l.running = false
		return l.errs
	}

	r := &run{
		config:     l.config,
		collator:   l.collator,
		logger:     l.logger,
		stats:      l.stats,
		workers:    l.workers,
		src:        s,
		processors: make([]Processor, 0, len(procs)),
		items:      make(chan *Item, bufferSize(l.bufferConfig.ItemBufferSize, DefaultItemBufferSize)),
		ids:        make(chan uint64, bufferSize(l.bufferConfig.IDBufferSize, DefaultIDBufferSize)),
		errs:       make(chan error, bufferSize(l.bufferConfig.ErrorBufferSize, DefaultErrorBufferSize)),
		batches:    make(chan *collate.Batch, bufferSize(l.bufferConfig.BatchBufferSize, DefaultBatchBufferSize)),
		done:       make(chan struct{}),
	}
	for _, p := range procs {
		if p != nil {
			r.processors = append(r.processors, p)
		}
	}
	r.finish = func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		close(r.errs)
		close(r.batches)
		close(r.done)
		l.running = false
	}

	l.errs, l.batches, l.done = r.errs, r.batches, r.done

	r.logger.Info("Starting loader with %d processor(s) and %d worker(s)", len(r.processors), r.workers)

	go r.doIDGenerator()
	go r.doReader(ctx)
	go r.doBatches(ctx)

	return r.errs
}

func bufferSize(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// Batches returns the channel of collated batches. It is closed when the
// run started by Go is complete.
func (l *Loader) Batches() <-chan *collate.Batch {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.batches == nil {
		return closedBatches
	}
	return l.batches
}

// Done returns a channel that is closed when the run started by Go is
// complete.
func (l *Loader) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done == nil {
		return closedChan
	}
	return l.done
}

// doIDGenerator hands out increasing item IDs until the run is done.
func (r *run) doIDGenerator() {
	var id uint64
	for {
		select {
		case r.ids <- id:
			id++
		case <-r.done:
			return
		}
	}
}

// doReader forwards examples from the Source as Items and wraps Source
// errors. It closes the items channel once the Source has closed both of
// its channels.
func (r *run) doReader(ctx context.Context) {
	r.logger.Debug("Starting source reader")
	out, errs := r.src.Read(ctx)

	if out == nil || errs == nil {
		r.logger.Error("Invalid source implementation: returned nil channel(s)")
		r.errs <- errors.New("loader: invalid source implementation: returned nil channel(s)")
		close(r.items)
		return
	}

	var outClosed, errsClosed bool
	var count uint64
	for !outClosed || !errsClosed {
		select {
		case ex, ok := <-out:
			if !ok {
				outClosed = true
				out = nil
				continue
			}
			id := <-r.ids
			r.items <- &Item{ID: id, Example: ex}
			count++

		case err, ok := <-errs:
			if !ok {
				errsClosed = true
				errs = nil
				continue
			}
			r.logger.Error("Source error: %v", err)
			r.stats.RecordSourceError()
			r.errs <- &SourceError{Err: err}
		}
	}

	r.logger.Info("Source reading complete. Total examples read: %d", count)
	close(r.items)
}

// doBatches groups items, hands every group to a worker and closes the
// output channels when all workers are finished.
func (r *run) doBatches(ctx context.Context) {
	var g errgroup.Group
	g.SetLimit(r.workers)

	var batchCount uint64
	for {
		items := r.waitForItems(fixConfig(r.config.Get()))
		if len(items) == 0 {
			break
		}

		batchCount++
		num := batchCount
		r.stats.RecordBatchStart(len(items))
		r.logger.Debug("Batch %d: assembling %d examples", num, len(items))

		g.Go(func() error {
			r.processBatch(ctx, num, items)
			return nil
		})
	}

	_ = g.Wait()
	r.logger.Info("Loader complete. Total batches: %d", batchCount)

	r.finish()
}

// processBatch runs items through the processors, collates the ones without
// errors and emits the result.
func (r *run) processBatch(ctx context.Context, num uint64, items []*Item) {
	start := time.Now()

	for i, proc := range r.processors {
		var err error
		items, err = proc.Process(ctx, items)
		if err != nil {
			r.logger.Error("Batch %d: processor %d error: %v", num, i+1, err)
			r.stats.RecordProcessorError()
			r.errs <- &ProcessorError{Err: err}
		}
	}

	examples := make([]collate.Example, 0, len(items))
	ids := make([]uint64, 0, len(items))
	for _, item := range items {
		if item.Error != nil {
			r.logger.Debug("Batch %d: item %d error: %v", num, item.ID, item.Error)
			r.stats.RecordItemError()
			r.errs <- &ProcessorError{Err: item.Error}
			continue
		}
		examples = append(examples, item.Example)
		ids = append(ids, item.ID)
	}

	defer func() {
		r.stats.RecordBatchComplete(len(examples), time.Since(start))
	}()

	if len(examples) == 0 {
		r.logger.Warn("Batch %d: no examples left to collate", num)
		return
	}

	b, err := r.collator.Collate(examples)
	if err != nil {
		r.logger.Error("Batch %d: collate failed: %v", num, err)
		r.stats.RecordCollateError()
		r.errs <- &CollateError{Batch: num, Items: ids, Err: err}
		return
	}

	for range examples {
		r.stats.RecordItemProcessed()
	}
	r.stats.RecordTokens(b.RealTokens(), len(b.Data))

	select {
	case r.batches <- b:
		shape := b.Shape()
		r.logger.Debug("Batch %d: emitted shape %v, padding %.2f", num, shape, b.PaddingRatio())
	case <-ctx.Done():
		r.logger.Warn("Batch %d: dropped, context done: %v", num, ctx.Err())
	}
}

// waitForItems collects items until a batch is ready, following
//
//	MaxTime = MaxItems > EOF > MinTime > MinItems
func (r *run) waitForItems(config ConfigValues) []*Item {
	var (
		reachedMinTime bool
		items          = make([]*Item, 0, config.MinItems)
		minTimer       <-chan time.Time
		maxTimer       <-chan time.Time
	)

	// A nil channel never fires, so unset timers are left nil.
	if config.MinTime > 0 {
		minTimer = time.After(config.MinTime)
	} else {
		reachedMinTime = true
	}
	if config.MaxTime > 0 {
		maxTimer = time.After(config.MaxTime)
	}

	for {
		select {
		case item, ok := <-r.items:
			if !ok {
				return items
			}

			items = append(items, item)

			if uint64(len(items)) >= config.MinItems && reachedMinTime {
				return items
			}
			if config.MaxItems > 0 && uint64(len(items)) >= config.MaxItems {
				return items
			}

		case <-minTimer:
			reachedMinTime = true
			if len(items) > 0 && uint64(len(items)) >= config.MinItems {
				return items
			}

		case <-maxTimer:
			if len(items) > 0 {
				return items
			}
		}
	}
}
