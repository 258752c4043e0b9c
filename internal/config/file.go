package config

import "time"

// File represents the structure of the .trendscan configuration file.
// Every field is optional; unset fields leave the current value untouched.
type File struct {
	// TrendingURL overrides the listing page.
	TrendingURL string `yaml:"trendingURL,omitempty"`

	// Keyword overrides the filter keyword.
	Keyword string `yaml:"keyword,omitempty"`

	// Top overrides the number of displayed repositories.
	Top int `yaml:"top,omitempty"`

	// ExcerptMaxLen overrides the README excerpt cap.
	ExcerptMaxLen int `yaml:"excerptMaxLen,omitempty"`

	// ListingTimeout overrides the listing request timeout (e.g. "30s").
	ListingTimeout time.Duration `yaml:"listingTimeout,omitempty"`

	// ReadmeTimeout overrides the README request timeout (e.g. "5s").
	ReadmeTimeout time.Duration `yaml:"readmeTimeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// RawBaseURL overrides the raw file host.
	RawBaseURL string `yaml:"rawBaseURL,omitempty"`

	// Branches overrides the README branches, tried in order.
	Branches []string `yaml:"branches,omitempty"`

	// WorkDir overrides the working directory.
	WorkDir string `yaml:"workDir,omitempty"`

	// ReportsDir overrides the reports directory.
	ReportsDir string `yaml:"reportsDir,omitempty"`

	// IndexFile overrides the index document name.
	IndexFile string `yaml:"indexFile,omitempty"`

	// Readme toggles README enrichment. A pointer so "false" can be told from unset.
	Readme *bool `yaml:"readme,omitempty"`

	// HTML toggles the HTML rendition.
	HTML *bool `yaml:"html,omitempty"`

	// Proxy sets a SOCKS5 proxy ("host:port").
	Proxy string `yaml:"proxy,omitempty"`
}

// Apply copies every set field of the file onto cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.TrendingURL != "" {
		cfg.TrendingURL = cf.TrendingURL
	}
	if cf.Keyword != "" {
		cfg.Keyword = cf.Keyword
	}
	if cf.Top != 0 {
		cfg.TopN = cf.Top
	}
	if cf.ExcerptMaxLen != 0 {
		cfg.ExcerptMaxLen = cf.ExcerptMaxLen
	}
	if cf.ListingTimeout != 0 {
		cfg.ListingTimeout = cf.ListingTimeout
	}
	if cf.ReadmeTimeout != 0 {
		cfg.DocumentTimeout = cf.ReadmeTimeout
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if cf.RawBaseURL != "" {
		cfg.RawBaseURL = cf.RawBaseURL
	}
	if len(cf.Branches) > 0 {
		cfg.Branches = append([]string(nil), cf.Branches...)
	}
	if cf.WorkDir != "" {
		cfg.WorkDir = cf.WorkDir
	}
	if cf.ReportsDir != "" {
		cfg.ReportsDir = cf.ReportsDir
	}
	if cf.IndexFile != "" {
		cfg.IndexFile = cf.IndexFile
	}
	if cf.Readme != nil {
		cfg.Enrich = *cf.Readme
	}
	if cf.HTML != nil {
		cfg.HTMLReport = *cf.HTML
	}
	if cf.Proxy != "" {
		cfg.ProxyAddress = cf.Proxy
	}
}
