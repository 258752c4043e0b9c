package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nao1215/trendscan/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Width(10)

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	summaryWarnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// SummaryWriter outputs a short human-readable run summary for the
// terminal. It is written to stderr so stdout stays the report path only.
type SummaryWriter struct {
	baseWriter

	// showSteps lists the performed pipeline steps.
	showSteps bool
}

// SummaryWriterOption configures a SummaryWriter.
type SummaryWriterOption func(*SummaryWriter)

// WithSteps adds the performed pipeline steps to the summary.
func WithSteps(show bool) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.showSteps = show
	}
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer, opts ...SummaryWriterOption) *SummaryWriter {
	w := &SummaryWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary box.
func (w *SummaryWriter) Write(report *model.DailyReport) (int, error) {
	rows := []string{
		summaryTitleStyle.Render(Title(report.Date)),
		"",
		w.row("Keyword", fmt.Sprintf("%q", report.Keyword)),
		w.row("Listed", fmt.Sprintf("%d", len(report.Listed))),
		w.row("Matched", fmt.Sprintf("%d", len(report.Matched))),
		w.row("Displayed", fmt.Sprintf("%d", len(report.Displayed()))),
	}

	if report.ReportPath != "" {
		rows = append(rows, w.row("Report", report.ReportPath))
	}
	if report.HTMLPath != "" {
		rows = append(rows, w.row("HTML", report.HTMLPath))
	}

	if report.IndexUpdated {
		rows = append(rows, w.row("Index", "updated"))
	} else {
		rows = append(rows, w.row("Index", summaryWarnStyle.Render("not updated")))
	}

	if w.showSteps && len(report.PerformedSteps) > 0 {
		names := make([]string, len(report.PerformedSteps))
		for i, s := range report.PerformedSteps {
			names[i] = stepLabel(s)
		}
		rows = append(rows, w.row("Steps", strings.Join(names, ", ")))
	}

	return io.WriteString(w.output, summaryBoxStyle.Render(strings.Join(rows, "\n"))+"\n")
}

// row renders one label/value line.
func (w *SummaryWriter) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		summaryLabelStyle.Render(label),
		summaryValueStyle.Render(value),
	)
}

// stepLabel turns "fetch_listing" into "Fetch Listing".
func stepLabel(step string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(step, "_", " "))
}
