// Package model defines the data structures shared across trendscan.
//
// This package contains the following main types:
//   - Repository: One trending repository scanned from the listing page
//   - ReadmeSummary: Bounded excerpts taken from a repository README
//   - DailyReport: The result of one run, filled by the pipeline steps
//
// Design decision: We keep models in their own package so that the scanner,
// the README extractor, the report writers and the pipeline can share them
// without import cycles.
package model
