package loader

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector records metrics while a Loader runs.
type StatsCollector interface {
	// RecordBatchStart is called when a group of examples starts processing.
	RecordBatchStart(batchSize int)

	// RecordBatchComplete is called when a group has been processed and,
	// if possible, collated.
	RecordBatchComplete(batchSize int, duration time.Duration)

	// RecordItemProcessed is called for each example that reached collation.
	RecordItemProcessed()

	// RecordItemError is called for each example dropped with an error.
	RecordItemError()

	// RecordSourceError is called when the Source reports an error.
	RecordSourceError()

	// RecordProcessorError is called when a Processor returns an error.
	RecordProcessorError()

	// RecordCollateError is called when a group cannot be collated.
	RecordCollateError()

	// RecordTokens is called for each collated batch with the number of real
	// words and the total number of positions including padding.
	RecordTokens(real, total int)

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about batch assembly.
type Stats struct {
	BatchesStarted   uint64
	BatchesCompleted uint64
	ItemsProcessed   uint64
	ItemErrors       uint64
	SourceErrors     uint64
	ProcessorErrors  uint64
	CollateErrors    uint64

	// RealTokens and TotalTokens count word positions over all collated
	// batches, without and with padding.
	RealTokens  uint64
	TotalTokens uint64

	TotalProcessingTime time.Duration
	MinBatchTime        time.Duration
	MaxBatchTime        time.Duration
	MinBatchSize        int
	MaxBatchSize        int

	StartTime      time.Time
	LastUpdateTime time.Time
}

// NoOpStatsCollector discards all metrics. It is the default collector.
type NoOpStatsCollector struct{}

// RecordBatchStart implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordBatchStart(batchSize int) {}

// RecordBatchComplete implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordBatchComplete(batchSize int, duration time.Duration) {}

// RecordItemProcessed implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordItemProcessed() {}

// RecordItemError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordItemError() {}

// RecordSourceError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordSourceError() {}

// RecordProcessorError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordProcessorError() {}

// RecordCollateError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordCollateError() {}

// RecordTokens implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordTokens(real, total int) {}

// GetStats implements the StatsCollector interface.
func (n *NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector keeps statistics in memory. It is safe for concurrent
// use.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats

	batchesStarted   uint64
	batchesCompleted uint64
	itemsProcessed   uint64
	itemErrors       uint64
	sourceErrors     uint64
	processorErrors  uint64
	collateErrors    uint64
	realTokens       uint64
	totalTokens      uint64
}

// NewBasicStatsCollector creates a new BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	now := time.Now()
	return &BasicStatsCollector{
		stats: Stats{
			StartTime:      now,
			LastUpdateTime: now,
			MinBatchTime:   time.Duration(1<<63 - 1),
		},
	}
}

// RecordBatchStart implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordBatchStart(batchSize int) {
	atomic.AddUint64(&b.batchesStarted, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	if batchSize < b.stats.MinBatchSize || b.stats.MinBatchSize == 0 {
		b.stats.MinBatchSize = batchSize
	}
	if batchSize > b.stats.MaxBatchSize {
		b.stats.MaxBatchSize = batchSize
	}
}

// RecordBatchComplete implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordBatchComplete(batchSize int, duration time.Duration) {
	atomic.AddUint64(&b.batchesCompleted, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.TotalProcessingTime += duration
	if duration < b.stats.MinBatchTime {
		b.stats.MinBatchTime = duration
	}
	if duration > b.stats.MaxBatchTime {
		b.stats.MaxBatchTime = duration
	}
}

// RecordItemProcessed implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordItemProcessed() {
	atomic.AddUint64(&b.itemsProcessed, 1)
}

// RecordItemError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordItemError() {
	atomic.AddUint64(&b.itemErrors, 1)
}

// RecordSourceError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordSourceError() {
	atomic.AddUint64(&b.sourceErrors, 1)
}

// RecordProcessorError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordProcessorError() {
	atomic.AddUint64(&b.processorErrors, 1)
}

// RecordCollateError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordCollateError() {
	atomic.AddUint64(&b.collateErrors, 1)
}

// RecordTokens implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordTokens(real, total int) {
	atomic.AddUint64(&b.realTokens, uint64(real))
	atomic.AddUint64(&b.totalTokens, uint64(total))
}

// GetStats implements the StatsCollector interface.
func (b *BasicStatsCollector) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := b.stats
	stats.BatchesStarted = atomic.LoadUint64(&b.batchesStarted)
	stats.BatchesCompleted = atomic.LoadUint64(&b.batchesCompleted)
	stats.ItemsProcessed = atomic.LoadUint64(&b.itemsProcessed)
	stats.ItemErrors = atomic.LoadUint64(&b.itemErrors)
	stats.SourceErrors = atomic.LoadUint64(&b.sourceErrors)
	stats.ProcessorErrors = atomic.LoadUint64(&b.processorErrors)
	stats.CollateErrors = atomic.LoadUint64(&b.collateErrors)
	stats.RealTokens = atomic.LoadUint64(&b.realTokens)
	stats.TotalTokens = atomic.LoadUint64(&b.totalTokens)

	if stats.BatchesCompleted == 0 {
		stats.MinBatchTime = 0
	}
	return stats
}

// AverageBatchTime returns the mean processing time per batch.
func (s *Stats) AverageBatchTime() time.Duration {
	if s.BatchesCompleted == 0 {
		return 0
	}
	return s.TotalProcessingTime / time.Duration(s.BatchesCompleted)
}

// AverageBatchSize returns the mean number of collated examples per batch.
func (s *Stats) AverageBatchSize() float64 {
	if s.BatchesCompleted == 0 {
		return 0
	}
	return float64(s.ItemsProcessed) / float64(s.BatchesCompleted)
}

// ErrorRate returns the percentage of examples dropped with an error.
func (s *Stats) ErrorRate() float64 {
	total := s.ItemsProcessed + s.ItemErrors
	if total == 0 {
		return 0
	}
	return float64(s.ItemErrors) / float64(total) * 100
}

// PaddingRatio returns the fraction of collated positions that are padding.
func (s *Stats) PaddingRatio() float64 {
	if s.TotalTokens == 0 {
		return 0
	}
	return float64(s.TotalTokens-s.RealTokens) / float64(s.TotalTokens)
}

// Duration returns the time between the start of collection and the last
// update.
func (s *Stats) Duration() time.Duration {
	return s.LastUpdateTime.Sub(s.StartTime)
}
