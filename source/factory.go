package source

import (
	"errors"
	"fmt"

	"github.com/MasterOfBinary/docbatch/collate"
	"github.com/MasterOfBinary/docbatch/dataset"
	"github.com/MasterOfBinary/docbatch/sampler"
)

// DatasetConfig provides configuration options for creating a Dataset source.
type DatasetConfig struct {
	// Data is the dataset to read from. This field is required.
	Data dataset.Dataset

	// Sampler chooses the indices and their order. This field is required.
	Sampler sampler.Sampler

	// BufferSize controls the size of the output buffer.
	BufferSize int
}

// Validate checks if the DatasetConfig is valid.
func (c DatasetConfig) Validate() error {
	if c.Data == nil {
		return errors.New("dataset cannot be nil")
	}
	if c.Sampler == nil {
		return errors.New("sampler cannot be nil")
	}
	return nil
}

// NewDataset creates a Dataset source with the given configuration.
//
// Example:
//
//	src, err := source.NewDataset(source.DatasetConfig{
//		Data:    data,
//		Sampler: &sampler.Sequential{Subset: valid},
//	})
//	if err != nil {
//		// handle error
//	}
func NewDataset(config DatasetConfig) (*Dataset, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset config: %w", err)
	}

	return &Dataset{
		Data:       config.Data,
		Sampler:    config.Sampler,
		BufferSize: config.BufferSize,
	}, nil
}

// ChannelConfig provides configuration options for creating a Channel source.
type ChannelConfig struct {
	// Input is the channel from which this source will read examples.
	// This field is required.
	Input <-chan collate.Example

	// BufferSize controls the size of the output buffer.
	BufferSize int
}

// Validate checks if the ChannelConfig is valid.
func (c ChannelConfig) Validate() error {
	if c.Input == nil {
		return errors.New("input channel cannot be nil")
	}
	return nil
}

// NewChannel creates a Channel source with the given configuration.
func NewChannel(config ChannelConfig) (*Channel, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid channel config: %w", err)
	}

	return &Channel{
		Input:      config.Input,
		BufferSize: config.BufferSize,
	}, nil
}

// ErrorConfig provides configuration options for creating an Error source.
type ErrorConfig struct {
	// Errs is the channel from which this source will read errors.
	// This field is required.
	Errs <-chan error

	// BufferSize controls the size of the error buffer.
	BufferSize int
}

// Validate checks if the ErrorConfig is valid.
func (c ErrorConfig) Validate() error {
	if c.Errs == nil {
		return errors.New("error channel cannot be nil")
	}
	return nil
}

// NewError creates an Error source with the given configuration.
func NewError(config ErrorConfig) (*Error, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid error config: %w", err)
	}

	return &Error{
		Errs:       config.Errs,
		BufferSize: config.BufferSize,
	}, nil
}
