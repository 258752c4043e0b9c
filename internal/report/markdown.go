package report

import (
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/trendscan/internal/model"
)

// TimestampLayout formats the footer generation time (local time, minutes).
const TimestampLayout = "2006-01-02 15:04"

// MarkdownWriter outputs the daily report in Markdown format.
// This is the report committed under reports/<date>.md.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
//
// A report without matches contains the title, the source line and a
// single notice. Otherwise it lists the displayed repositories followed by
// a generation timestamp footer.
func (w *MarkdownWriter) Write(report *model.DailyReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	if !report.HasMatches() {
		md.PlainTextf("No trending repositories matched keyword %q today.", report.Keyword)
		return len(md.String()), md.Build()
	}

	displayed := report.Displayed()
	md.PlainTextf("Matched %d repositories for keyword %q, showing top %d:",
		len(report.Matched), report.Keyword, len(displayed))
	md.PlainText("")

	for i, repo := range displayed {
		w.writeRecord(md, i+1, repo)
	}

	w.writeFooter(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and source attribution.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.DailyReport) {
	md.H1(Title(report.Date))
	md.PlainText("")
	md.PlainText("Source: " + markdown.Link(report.SourceURL, report.SourceURL))
	md.PlainText("")
}

// writeRecord writes one numbered repository block. Sub-lines appear only
// for non-empty excerpts.
func (w *MarkdownWriter) writeRecord(md *markdown.Markdown, index int, repo model.Repository) {
	md.PlainTextf("%d. %s", index, markdown.Link(repo.Name, repo.URL()))

	lines := []struct {
		label string
		text  string
	}{
		{"Introduction", repo.Introduction()},
		{"Scenario", repo.Summary.Scenario},
		{"Install", repo.Summary.Install},
		{"Usage", repo.Summary.Usage},
		{"Why it matters", repo.Summary.Meaning},
	}
	for _, l := range lines {
		if l.text == "" {
			continue
		}
		md.PlainText("   - " + l.label + ": " + l.text)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, report *model.DailyReport) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("Generated at (local): " + report.GeneratedAt.Format(TimestampLayout))
}
