// Package config provides configuration structures and utilities for
// trendscan. It defines the listing, filtering, enrichment and output
// options, and loads overrides from the .trendscan YAML file and the
// GITHUB_TOKEN environment variable.
package config
