// Package index keeps the repository index document pointing at the newest
// report.
//
// The index document (README.md in the working directory) is owned by the
// user. Only the text between the "## Latest Report" and "## Contents"
// headings is generated; everything else is preserved byte for byte.
package index
