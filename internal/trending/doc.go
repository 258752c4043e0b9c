// Package trending scans the GitHub trending listing page.
//
// The Scanner consumes start-tag, text and end-tag events in document order
// and rebuilds repository records from them:
//   - anchors inside an h2 whose href looks like "/owner/name" become records
//   - the first "col-9" paragraph after a record becomes its description
//
// Parse feeds a Scanner from golang.org/x/net/html's tokenizer, and Filter
// applies the keyword filter to the scanned records.
//
// # Usage
//
//	repos, err := trending.Parse(body)
//	matched := trending.Filter(repos, "ai")
package trending
