// Package main provides the entry point for the trendscan CLI.
//
// trendscan scans the GitHub trending page, keeps the repositories related
// to a keyword (AI by default) and writes a dated Markdown report together
// with an updated index document.
//
// Usage:
//
//	trendscan
//	trendscan --keyword llm --top 10 --html
//
// See --help for all available options.
package main

// main is the entry point for trendscan.
func main() {
	Execute()
}
