// Package report renders a model.DailyReport.
//
// This package contains writers for different output formats:
//   - MarkdownWriter: the daily report committed under reports/<date>.md
//   - HTMLWriter: a standalone HTML page converted from the Markdown
//   - SummaryWriter: a styled run summary for the terminal
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably.
package report
