package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and allow callers to use
// errors.Is() while still providing human-readable messages.
var (
	// ErrEmptyTrendingURL is returned when no listing URL is configured.
	ErrEmptyTrendingURL = errors.New("invalid trending URL: must not be empty")

	// ErrInvalidTopN is returned when the number of displayed repositories is not positive.
	ErrInvalidTopN = errors.New("invalid top: must be positive")

	// ErrInvalidExcerptLen is returned when the README excerpt cap is not positive.
	ErrInvalidExcerptLen = errors.New("invalid excerpt length: must be positive")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoBranches is returned when README enrichment has no branch to try.
	ErrNoBranches = errors.New("no branches configured: README enrichment needs at least one")

	// ErrEmptyOutputPath is returned when the reports directory or index file is empty.
	ErrEmptyOutputPath = errors.New("reports directory and index file must not be empty")
)
