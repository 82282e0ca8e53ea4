package loader

import "fmt"

// SourceError wraps an error reported by the Source.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source error: %v", e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ProcessorError wraps a processor-wide error or an error set on a single
// item by a Processor.
type ProcessorError struct {
	Err error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("processor error: %v", e.Err)
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// CollateError reports a batch that could not be collated. The batch is not
// emitted; Items lists the IDs of the examples it held.
type CollateError struct {
	Batch uint64
	Items []uint64
	Err   error
}

func (e *CollateError) Error() string {
	return fmt.Sprintf("collate error in batch %d (items %v): %v", e.Batch, e.Items, e.Err)
}

func (e *CollateError) Unwrap() error {
	return e.Err
}
