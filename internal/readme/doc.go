// Package readme extracts short excerpts from loosely structured README files.
//
// Extract finds the first line matching any of a set of case-insensitive
// patterns and returns the text up to the next heading, with code removed,
// whitespace squeezed and the result cut to a fixed number of characters.
//
// Summarize applies Extract with the default heading patterns for the five
// summary fields (introduction, scenario, install, usage, meaning).
//
// Known quirk: an unterminated ``` fence removes everything after it from the
// excerpt.
package readme
