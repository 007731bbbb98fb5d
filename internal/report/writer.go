package report

import (
	"io"

	"github.com/bioprep/airgen/internal/model"
)

// Writer outputs a complete run result in one format.
// Implementations write to the destination they were constructed
// with and return the number of bytes written.
type Writer interface {
	// Write outputs the run result.
	Write(result *model.RunResult) (int, error)
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
