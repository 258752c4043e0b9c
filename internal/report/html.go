package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/nao1215/trendscan/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// htmlPage wraps the rendered body into a standalone document.
const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
%s<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; }
li > ul { margin-top: .25rem; }
hr { border: 0; border-top: 1px solid #d0d7de; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLWriter outputs the daily report as a standalone HTML page.
// The page is produced from the Markdown rendition, so both formats always
// carry the same content.
//
// Raw HTML coming from repository descriptions is not passed through.
type HTMLWriter struct {
	baseWriter
	engine    goldmark.Markdown
	generator string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithGenerator records the generator version in a <meta name="generator"> tag.
// An empty version omits the tag.
func WithGenerator(version string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.generator = version
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the report to Markdown, converts it and writes the page.
func (w *HTMLWriter) Write(report *model.DailyReport) (int, error) {
	var src bytes.Buffer
	if _, err := NewMarkdownWriter(&src).Write(report); err != nil {
		return 0, fmt.Errorf("failed to render markdown: %w", err)
	}

	var body bytes.Buffer
	if err := w.engine.Convert(src.Bytes(), &body); err != nil {
		return 0, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	var meta string
	if w.generator != "" {
		meta = fmt.Sprintf("<meta name=\"generator\" content=\"trendscan %s\">\n", html.EscapeString(w.generator))
	}

	page := fmt.Sprintf(htmlPage, meta, html.EscapeString(Title(report.Date)), body.String())
	return io.WriteString(w.output, page)
}
