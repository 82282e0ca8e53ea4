package processor

import (
	"errors"
	"fmt"
)

// TransformConfig provides configuration options for creating a Transform
// processor.
type TransformConfig struct {
	// Func is the transformation. This field is required.
	Func TransformFunc

	// ContinueOnError keeps processing after a failed transformation.
	ContinueOnError bool
}

// Validate checks if the TransformConfig is valid.
func (c TransformConfig) Validate() error {
	if c.Func == nil {
		return errors.New("transformation function cannot be nil")
	}
	return nil
}

// NewTransform creates a Transform processor with the given configuration.
//
// Example:
//
//	proc, err := processor.NewTransform(processor.TransformConfig{
//		Func:            processor.Truncate(50, 100),
//		ContinueOnError: true,
//	})
//	if err != nil {
//		// handle error
//	}
func NewTransform(config TransformConfig) (*Transform, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transform config: %w", err)
	}

	return &Transform{
		Func:            config.Func,
		ContinueOnError: config.ContinueOnError,
	}, nil
}

// FilterConfig provides configuration options for creating a Filter
// processor.
type FilterConfig struct {
	// Predicate returns true for items to keep. This field is required.
	Predicate FilterFunc

	// InvertMatch removes matching items instead of keeping them.
	InvertMatch bool
}

// Validate checks if the FilterConfig is valid.
func (c FilterConfig) Validate() error {
	if c.Predicate == nil {
		return errors.New("predicate function cannot be nil")
	}
	return nil
}

// NewFilter creates a Filter processor with the given configuration.
func NewFilter(config FilterConfig) (*Filter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter config: %w", err)
	}

	return &Filter{
		Predicate:   config.Predicate,
		InvertMatch: config.InvertMatch,
	}, nil
}

// ErrorConfig provides configuration options for creating an Error
// processor.
type ErrorConfig struct {
	Err          error
	FailFraction float64
}

// Validate checks if the ErrorConfig is valid.
func (c ErrorConfig) Validate() error {
	if c.FailFraction < 0 || c.FailFraction > 1 {
		return fmt.Errorf("fail fraction %v outside [0, 1]", c.FailFraction)
	}
	return nil
}

// NewError creates an Error processor with the given configuration.
func NewError(config ErrorConfig) (*Error, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid error config: %w", err)
	}

	return &Error{
		Err:          config.Err,
		FailFraction: config.FailFraction,
	}, nil
}
