package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/trendscan/internal/config"
	"github.com/nao1215/trendscan/internal/index"
	"github.com/nao1215/trendscan/internal/model"
	"github.com/nao1215/trendscan/internal/readme"
	render "github.com/nao1215/trendscan/internal/report"
	"github.com/nao1215/trendscan/internal/trending"
)

// Report file permissions. Reports are written owner-only, matching how
// the rest of the tool treats generated output.
const (
	reportDirPerm  = 0o750
	reportFilePerm = 0o600
)

// FetchListingStep downloads the trending listing and scans it into
// report.Listed. A failed or non-2xx request is fatal.
type FetchListingStep struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// FetchListingStepOption configures a FetchListingStep.
type FetchListingStepOption func(*FetchListingStep)

// WithFetchListingLogger sets a custom logger for the step.
func WithFetchListingLogger(logger *slog.Logger) FetchListingStepOption {
	return func(s *FetchListingStep) {
		s.logger = logger
	}
}

// NewFetchListingStep creates the listing step.
func NewFetchListingStep(fetcher Fetcher, opts ...FetchListingStepOption) *FetchListingStep {
	s := &FetchListingStep{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *FetchListingStep) Name() string {
	return "fetch_listing"
}

// Do fetches report.SourceURL and fills report.Listed.
func (s *FetchListingStep) Do(ctx context.Context, report *model.DailyReport) error {
	page, err := s.fetcher.GetText(ctx, report.SourceURL)
	if err != nil {
		return fmt.Errorf("failed to fetch trending listing: %w", err)
	}

	repos, err := trending.ParseString(page)
	if err != nil {
		return fmt.Errorf("failed to scan trending listing: %w", err)
	}
	report.Listed = repos

	if len(repos) == 0 {
		// An empty scan still produces the no-match report.
		s.logger.Warn("no repositories found on listing page", "url", report.SourceURL)
	}
	s.logger.Debug("listing scanned", "repositories", len(repos))
	return nil
}

// FilterStep keeps the listed repositories whose name or description
// contains report.Keyword, ignoring case.
type FilterStep struct {
	logger *slog.Logger
}

// NewFilterStep creates the filter step.
func NewFilterStep(logger *slog.Logger) *FilterStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilterStep{logger: logger}
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do fills report.Matched.
func (s *FilterStep) Do(_ context.Context, report *model.DailyReport) error {
	report.Matched = trending.Filter(report.Listed, report.Keyword)
	s.logger.Debug("listing filtered",
		"keyword", report.Keyword,
		"listed", len(report.Listed),
		"matched", len(report.Matched),
	)
	return nil
}

// EnrichStep fetches the README of every displayed repository and stores
// the extracted excerpts in its Summary.
//
// README fetches never fail the run: a repository whose README cannot be
// fetched from any branch keeps an empty summary.
type EnrichStep struct {
	fetcher       Fetcher
	rawBaseURL    string
	branches      []string
	timeout       time.Duration
	excerptMaxLen int
	logger        *slog.Logger
}

// EnrichStepOption configures an EnrichStep.
type EnrichStepOption func(*EnrichStep)

// WithEnrichRawBaseURL sets the raw file host.
func WithEnrichRawBaseURL(baseURL string) EnrichStepOption {
	return func(s *EnrichStep) {
		s.rawBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithEnrichBranches sets the branches tried in order.
func WithEnrichBranches(branches []string) EnrichStepOption {
	return func(s *EnrichStep) {
		s.branches = branches
	}
}

// WithEnrichTimeout sets the per-request timeout.
func WithEnrichTimeout(timeout time.Duration) EnrichStepOption {
	return func(s *EnrichStep) {
		s.timeout = timeout
	}
}

// WithEnrichExcerptMaxLen sets the excerpt cap in characters.
func WithEnrichExcerptMaxLen(maxLen int) EnrichStepOption {
	return func(s *EnrichStep) {
		s.excerptMaxLen = maxLen
	}
}

// WithEnrichLogger sets a custom logger for the step.
func WithEnrichLogger(logger *slog.Logger) EnrichStepOption {
	return func(s *EnrichStep) {
		s.logger = logger
	}
}

// NewEnrichStep creates the README enrichment step.
func NewEnrichStep(fetcher Fetcher, opts ...EnrichStepOption) *EnrichStep {
	s := &EnrichStep{
		fetcher:       fetcher,
		rawBaseURL:    config.DefaultRawBaseURL,
		branches:      config.DefaultBranches(),
		timeout:       config.DefaultDocumentTimeout,
		excerptMaxLen: config.DefaultExcerptMaxLen,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *EnrichStep) Name() string {
	return "enrich"
}

// Do enriches the displayed repositories in order.
func (s *EnrichStep) Do(ctx context.Context, report *model.DailyReport) error {
	displayed := len(report.Displayed())

	for i := range displayed {
		if err := ctx.Err(); err != nil {
			return err
		}

		repo := &report.Matched[i]
		doc, ok := s.fetchReadme(ctx, repo.Name)
		if !ok {
			continue
		}
		repo.Summary = readme.Summarize(doc, s.excerptMaxLen)
	}
	return nil
}

// fetchReadme tries every branch in order and returns the first document
// served with a 2xx status.
func (s *EnrichStep) fetchReadme(ctx context.Context, name string) (string, bool) {
	for _, branch := range s.branches {
		url := ReadmeURL(s.rawBaseURL, name, branch)

		reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
		doc, err := s.fetcher.GetText(reqCtx, url)
		cancel()

		if err == nil {
			s.logger.Debug("readme fetched", "repository", name, "branch", branch)
			return doc, true
		}
		s.logger.Debug("readme unavailable", "repository", name, "branch", branch, "error", err)
	}
	return "", false
}

// ReadmeURL builds the raw README URL of a repository on a branch.
func ReadmeURL(rawBaseURL, name, branch string) string {
	return rawBaseURL + "/" + name + "/" + branch + "/README.md"
}

// WriteReportStep writes the Markdown report, and optionally its HTML
// rendition, to <dir>/<date>.<ext>. Existing files for the same date are
// overwritten.
type WriteReportStep struct {
	dir     string
	html    bool
	version string
	logger  *slog.Logger
}

// WriteReportStepOption configures a WriteReportStep.
type WriteReportStepOption func(*WriteReportStep)

// WithHTMLReport also writes <date>.html.
func WithHTMLReport(enabled bool) WriteReportStepOption {
	return func(s *WriteReportStep) {
		s.html = enabled
	}
}

// WithReportVersion records the generator version in the HTML rendition.
func WithReportVersion(version string) WriteReportStepOption {
	return func(s *WriteReportStep) {
		s.version = version
	}
}

// WithWriteReportLogger sets a custom logger for the step.
func WithWriteReportLogger(logger *slog.Logger) WriteReportStepOption {
	return func(s *WriteReportStep) {
		s.logger = logger
	}
}

// NewWriteReportStep creates the report writing step for dir.
func NewWriteReportStep(dir string, opts ...WriteReportStepOption) *WriteReportStep {
	s := &WriteReportStep{
		dir:    dir,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WriteReportStep) Name() string {
	return "write_report"
}

// Do writes the report files and records their paths.
func (s *WriteReportStep) Do(_ context.Context, report *model.DailyReport) error {
	if err := os.MkdirAll(s.dir, reportDirPerm); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(s.dir, report.FileName(".md"))
	if err := writeReportFile(path, report, func(w io.Writer) render.Writer {
		return render.NewMarkdownWriter(w)
	}); err != nil {
		return err
	}
	report.ReportPath = path
	s.logger.Debug("report written", "path", path)

	if s.html {
		htmlPath := filepath.Join(s.dir, report.FileName(".html"))
		if err := writeReportFile(htmlPath, report, func(w io.Writer) render.Writer {
			return render.NewHTMLWriter(w, render.WithGenerator(s.version))
		}); err != nil {
			return err
		}
		report.HTMLPath = htmlPath
	}

	return nil
}

// writeReportFile creates path and renders the report into it.
func writeReportFile(path string, report *model.DailyReport, newWriter func(io.Writer) render.Writer) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, reportFilePerm) //nolint:gosec // path is built from the configured reports directory
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", closeErr)
		}
	}()

	if _, err := newWriter(f).Write(report); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// UpdateIndexStep points the index document at the written report.
type UpdateIndexStep struct {
	updater *index.Updater
	logger  *slog.Logger
}

// NewUpdateIndexStep creates the index step.
func NewUpdateIndexStep(updater *index.Updater, logger *slog.Logger) *UpdateIndexStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateIndexStep{updater: updater, logger: logger}
}

// Name returns the step name.
func (s *UpdateIndexStep) Name() string {
	return "update_index"
}

// Do rewrites the index document. A missing index document is skipped.
func (s *UpdateIndexStep) Do(_ context.Context, report *model.DailyReport) error {
	if report.ReportPath == "" {
		return ErrNoReportWritten
	}

	updated, err := s.updater.Update(report.ReportPath)
	if err != nil {
		return err
	}
	report.IndexUpdated = updated
	if !updated {
		s.logger.Debug("index document not found, skipped")
	}
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Enrich enables README fetching for displayed repositories.
	Enrich bool

	// RawBaseURL is the raw file host for README requests.
	RawBaseURL string

	// Branches are tried in order for each README.
	Branches []string

	// DocumentTimeout bounds each README request.
	DocumentTimeout time.Duration

	// ExcerptMaxLen caps each README excerpt.
	ExcerptMaxLen int

	// ReportsDir is where reports are written.
	ReportsDir string

	// IndexPath is the index document.
	IndexPath string

	// HTML also writes an HTML rendition.
	HTML bool

	// Version is recorded in the HTML rendition.
	Version string
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// FromConfig copies every pipeline-relevant setting from cfg.
func FromConfig(cfg *config.Config) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Enrich = cfg.Enrich
		c.RawBaseURL = cfg.RawBaseURL
		c.Branches = cfg.Branches
		c.DocumentTimeout = cfg.DocumentTimeout
		c.ExcerptMaxLen = cfg.ExcerptMaxLen
		c.ReportsDir = cfg.ReportsPath()
		c.IndexPath = cfg.IndexPath()
		c.HTML = cfg.HTMLReport
	}
}

// WithPipelineEnrich toggles README enrichment.
func WithPipelineEnrich(enabled bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Enrich = enabled
	}
}

// WithPipelineRawBaseURL sets the raw file host.
func WithPipelineRawBaseURL(baseURL string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.RawBaseURL = baseURL
	}
}

// WithPipelineOutput sets the reports directory and the index document.
func WithPipelineOutput(reportsDir, indexPath string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ReportsDir = reportsDir
		c.IndexPath = indexPath
	}
}

// WithPipelineVersion sets the version recorded in the HTML rendition.
func WithPipelineVersion(version string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Version = version
	}
}

// DefaultPipeline creates the standard trendscan pipeline:
// fetch_listing, filter, enrich (unless disabled), write_report, update_index.
//
// listing fetches the trending page; documents fetches README files. They
// may be the same Fetcher.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (FromConfig, etc).
func DefaultPipeline(listing, documents Fetcher, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Enrich:          true,
		RawBaseURL:      config.DefaultRawBaseURL,
		Branches:        config.DefaultBranches(),
		DocumentTimeout: config.DefaultDocumentTimeout,
		ExcerptMaxLen:   config.DefaultExcerptMaxLen,
		ReportsDir:      config.DefaultReportsDir,
		IndexPath:       config.DefaultIndexFile,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewFetchListingStep(listing, WithFetchListingLogger(p.logger)),
		NewFilterStep(p.logger),
	)

	if cfg.Enrich {
		p.AddStep(NewEnrichStep(documents,
			WithEnrichRawBaseURL(cfg.RawBaseURL),
			WithEnrichBranches(cfg.Branches),
			WithEnrichTimeout(cfg.DocumentTimeout),
			WithEnrichExcerptMaxLen(cfg.ExcerptMaxLen),
			WithEnrichLogger(p.logger),
		))
	}

	p.AddSteps(
		NewWriteReportStep(cfg.ReportsDir,
			WithHTMLReport(cfg.HTML),
			WithReportVersion(cfg.Version),
			WithWriteReportLogger(p.logger),
		),
		NewUpdateIndexStep(
			index.NewUpdater(cfg.IndexPath, index.WithReportsDir(relativeReportsDir(cfg.IndexPath, cfg.ReportsDir))),
			p.logger,
		),
	)

	return p
}

// relativeReportsDir returns the reports directory as linked from the index
// document, using forward slashes.
func relativeReportsDir(indexPath, reportsDir string) string {
	rel, err := filepath.Rel(filepath.Dir(indexPath), reportsDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(reportsDir)
	}
	return filepath.ToSlash(rel)
}
