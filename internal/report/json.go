package report

import (
	"encoding/json"
	"io"

	"github.com/bioprep/airgen/internal/model"
)

// JSONWriter outputs the full run result as indented JSON, including
// the grid with bead coordinates. This is the machine-readable
// counterpart to the restraint tables.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(w)}
}

// Write outputs the run result as JSON.
func (w *JSONWriter) Write(result *model.RunResult) (int, error) {
	cw := &countingWriter{w: w.output}
	encoder := json.NewEncoder(cw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// countingWriter tracks bytes written through it.
type countingWriter struct {
	w io.Writer
	n int
}

// Write implements io.Writer.
func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
