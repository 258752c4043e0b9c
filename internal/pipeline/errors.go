package pipeline

import "errors"

// ErrNoReportWritten is returned by the index step when no report path
// has been recorded by an earlier step.
var ErrNoReportWritten = errors.New("no report has been written")
