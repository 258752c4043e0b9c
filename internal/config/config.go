package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror what the report has always used and work without any
// configuration file.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "trendscan"

	// DefaultTrendingURL is the daily trending listing.
	DefaultTrendingURL = "https://github.com/trending?since=daily"

	// DefaultKeyword selects AI-related repositories.
	DefaultKeyword = "ai"

	// DefaultTopN is the number of matched repositories shown in the report.
	DefaultTopN = 15

	// DefaultExcerptMaxLen caps each README excerpt, counted in characters.
	DefaultExcerptMaxLen = 400

	// DefaultListingTimeout bounds the trending page request.
	DefaultListingTimeout = 20 * time.Second

	// DefaultDocumentTimeout bounds each README request. It is shorter than
	// the listing timeout because a missing README only degrades the report.
	DefaultDocumentTimeout = 10 * time.Second

	// DefaultUserAgent is a browser-like identifier.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

	// DefaultMaxBodySize limits the maximum response body size to read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultRawBaseURL serves raw repository files.
	DefaultRawBaseURL = "https://raw.githubusercontent.com"

	// DefaultReportsDir is the report directory, relative to WorkDir.
	DefaultReportsDir = "reports"

	// DefaultIndexFile is the index document, relative to WorkDir.
	DefaultIndexFile = "README.md"

	// TokenEnv is the environment variable holding an optional GitHub token.
	TokenEnv = "GITHUB_TOKEN"
)

// DefaultBranches are tried in order when fetching a README.
func DefaultBranches() []string {
	return []string{"main", "master"}
}

// Config holds all configuration options for trendscan.
// This struct is populated from defaults, the configuration file, the
// environment and CLI flags, in that order, and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable.
type Config struct {
	// TrendingURL is the listing page to scan.
	TrendingURL string

	// Keyword is matched case-insensitively against name and description.
	Keyword string

	// TopN is the number of matched repositories shown in the report.
	// Zero or a negative value is rejected by Validate.
	TopN int

	// ExcerptMaxLen caps each README excerpt in characters.
	ExcerptMaxLen int

	// ListingTimeout bounds the listing request.
	ListingTimeout time.Duration

	// DocumentTimeout bounds each README request.
	DocumentTimeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// RawBaseURL is the base of raw README URLs
	// (<RawBaseURL>/<owner>/<name>/<branch>/README.md).
	RawBaseURL string

	// Branches are tried in order when fetching a README.
	Branches []string

	// WorkDir is the directory that holds ReportsDir and IndexFile.
	WorkDir string

	// ReportsDir is the report directory relative to WorkDir.
	ReportsDir string

	// IndexFile is the index document relative to WorkDir.
	IndexFile string

	// Enrich enables README fetching for displayed repositories.
	Enrich bool

	// HTMLReport additionally writes an HTML rendition next to the Markdown report.
	HTMLReport bool

	// ProxyAddress routes all requests through a SOCKS5 proxy ("host:port").
	// Empty means direct connections.
	ProxyAddress string

	// GitHubToken is sent as a bearer token when set. Never logged.
	GitHubToken string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Quiet suppresses the run summary on stderr.
	Quiet bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the current directory, the home directory
	// and the XDG config directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero.
func NewConfig() *Config {
	return &Config{
		TrendingURL:     DefaultTrendingURL,
		Keyword:         DefaultKeyword,
		TopN:            DefaultTopN,
		ExcerptMaxLen:   DefaultExcerptMaxLen,
		ListingTimeout:  DefaultListingTimeout,
		DocumentTimeout: DefaultDocumentTimeout,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		RawBaseURL:      DefaultRawBaseURL,
		Branches:        DefaultBranches(),
		WorkDir:         ".",
		ReportsDir:      DefaultReportsDir,
		IndexFile:       DefaultIndexFile,
		Enrich:          true,
	}
}

// ReportsPath returns the absolute-or-relative reports directory.
func (c *Config) ReportsPath() string {
	return filepath.Join(c.WorkDir, c.ReportsDir)
}

// IndexPath returns the path of the index document.
func (c *Config) IndexPath() string {
	return filepath.Join(c.WorkDir, c.IndexFile)
}

// XDGConfigDir returns the XDG config directory for trendscan.
// On Linux: ~/.config/trendscan
// On macOS: ~/Library/Application Support/trendscan
// On Windows: %APPDATA%\trendscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
func (c *Config) Validate() error {
	if c.TrendingURL == "" {
		return ErrEmptyTrendingURL
	}

	if c.TopN <= 0 {
		return ErrInvalidTopN
	}

	if c.ExcerptMaxLen <= 0 {
		return ErrInvalidExcerptLen
	}

	if c.ListingTimeout <= 0 || c.DocumentTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.Enrich && len(c.Branches) == 0 {
		return ErrNoBranches
	}

	if c.ReportsDir == "" || c.IndexFile == "" {
		return ErrEmptyOutputPath
	}

	return nil
}
