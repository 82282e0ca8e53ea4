package loader

import (
	"sync"
	"time"
)

// Config retrieves the grouping values used by a Loader. Get is called
// before every batch, so implementations may return different values over
// time, but must then be safe for concurrent use.
type Config interface {
	Get() ConfigValues
}

// ConfigValues controls when a group of examples is handed on for
// processing and collation.
type ConfigValues struct {
	// MinTime is the minimum time to wait before a batch is formed, unless
	// MaxItems is reached first.
	MinTime time.Duration

	// MinItems is the minimum number of examples in a batch. Fewer examples
	// are only used when MaxTime passes or the Source is exhausted.
	MinItems uint64

	// MaxTime is the longest a batch waits for examples. When it passes, the
	// examples read so far form a batch.
	MaxTime time.Duration

	// MaxItems caps the number of examples in a batch.
	MaxItems uint64
}

// NewBatchSizeConfig returns a Config producing batches of exactly size
// examples, except possibly the last one of an epoch.
func NewBatchSizeConfig(size uint64) *ConstantConfig {
	return NewConstantConfig(&ConfigValues{
		MinItems: size,
		MaxItems: size,
	})
}

// NewConstantConfig returns a Config with constant values. If values is
// nil, every example is collated on its own as soon as it is read.
func NewConstantConfig(values *ConfigValues) *ConstantConfig {
	if values == nil {
		return &ConstantConfig{}
	}
	return &ConstantConfig{values: *values}
}

// ConstantConfig is a Config whose values never change.
type ConstantConfig struct {
	values ConfigValues
}

// Get implements the Config interface.
func (c *ConstantConfig) Get() ConfigValues {
	return c.values
}

// NewDynamicConfig returns a Config that can be adjusted while a Loader is
// running, for example to grow the batch size between epochs.
func NewDynamicConfig(values *ConfigValues) *DynamicConfig {
	if values == nil {
		return &DynamicConfig{}
	}
	return &DynamicConfig{values: *values}
}

// DynamicConfig is a Config whose values can be updated concurrently.
type DynamicConfig struct {
	mu     sync.RWMutex
	values ConfigValues
}

// Get implements the Config interface.
func (c *DynamicConfig) Get() ConfigValues {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values
}

// UpdateBatchSize sets MinItems and MaxItems.
func (c *DynamicConfig) UpdateBatchSize(minItems, maxItems uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.MinItems = minItems
	c.values.MaxItems = maxItems
}

// UpdateTiming sets MinTime and MaxTime.
func (c *DynamicConfig) UpdateTiming(minTime, maxTime time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.MinTime = minTime
	c.values.MaxTime = maxTime
}

// Update replaces all values.
func (c *DynamicConfig) Update(values ConfigValues) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = values
}

// fixConfig reconciles conflicting values:
//   - MinItems of zero becomes 1.
//   - MinTime larger than a set MaxTime is lowered to MaxTime.
//   - MinItems larger than a set MaxItems is lowered to MaxItems.
func fixConfig(c ConfigValues) ConfigValues {
	if c.MinItems == 0 {
		c.MinItems = 1
	}
	if c.MaxTime > 0 && c.MinTime > c.MaxTime {
		c.MinTime = c.MaxTime
	}
	if c.MaxItems > 0 && c.MinItems > c.MaxItems {
		c.MinItems = c.MaxItems
	}
	return c
}
