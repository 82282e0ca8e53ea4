package loader

// Default buffer sizes for the channels used by a Loader.
const (
	// DefaultItemBufferSize is the number of examples that can be queued
	// between the Source and batch grouping.
	DefaultItemBufferSize = 100

	// DefaultIDBufferSize should match or exceed DefaultItemBufferSize so
	// that ID generation never stalls reading.
	DefaultIDBufferSize = 100

	// DefaultErrorBufferSize absorbs bursts of errors while the caller is
	// busy with a batch.
	DefaultErrorBufferSize = 100

	// DefaultBatchBufferSize is the number of collated batches that can wait
	// for the caller.
	DefaultBatchBufferSize = 2

	// DefaultWorkers is the number of batches assembled concurrently.
	DefaultWorkers = 1
)
