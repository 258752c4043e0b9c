package report

import (
	"io"

	"github.com/nao1215/trendscan/internal/model"
)

// Writer defines the interface for report output.
// Implementations render a daily report in one format.
//
// Design decision: We use an interface to allow different output formats
// and destinations. The pipeline writes files, tests write buffers, both
// through the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.DailyReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Title returns the document title for a report date.
func Title(date string) string {
	return "GitHub AI Trending Daily - " + date
}
