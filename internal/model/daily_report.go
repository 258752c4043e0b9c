package model

import "time"

// DateLayout is the calendar date format used for report names and titles.
const DateLayout = "2006-01-02"

// DailyReport is the result of one trendscan run.
// Pipeline steps fill it in order; the report writers only read it.
type DailyReport struct {
	// Date is the calendar date label, formatted with DateLayout.
	Date string

	// SourceURL is the trending listing that was scanned.
	SourceURL string

	// Keyword is the filter keyword.
	Keyword string

	// TopN caps the number of repositories rendered.
	TopN int

	// Listed contains every repository scanned from the listing, in page order.
	Listed []Repository

	// Matched contains the repositories that passed the keyword filter.
	Matched []Repository

	// GeneratedAt is the local time the report was generated.
	GeneratedAt time.Time

	// ReportPath is the path of the written Markdown report.
	ReportPath string

	// HTMLPath is the path of the optional HTML rendition.
	HTMLPath string

	// IndexUpdated is true when the index document was rewritten.
	IndexUpdated bool

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string
}

// NewDailyReport creates a report for the given generation time.
func NewDailyReport(sourceURL, keyword string, topN int, now time.Time) *DailyReport {
	return &DailyReport{
		Date:        now.Format(DateLayout),
		SourceURL:   sourceURL,
		Keyword:     keyword,
		TopN:        topN,
		Listed:      make([]Repository, 0),
		Matched:     make([]Repository, 0),
		GeneratedAt: now,
	}
}

// Displayed returns the matched repositories that fit within TopN.
// A non-positive TopN shows every match.
func (r *DailyReport) Displayed() []Repository {
	if r.TopN <= 0 || len(r.Matched) <= r.TopN {
		return r.Matched
	}
	return r.Matched[:r.TopN]
}

// HasMatches reports whether any repository passed the filter.
func (r *DailyReport) HasMatches() bool {
	return len(r.Matched) > 0
}

// FileName returns the report file name for the report date.
func (r *DailyReport) FileName(ext string) string {
	return r.Date + ext
}
