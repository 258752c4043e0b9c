package index

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Marker headings delimiting the generated region of the index document.
const (
	// LatestMarker opens the region holding the latest report reference.
	LatestMarker = "## Latest Report"

	// ContentsMarker closes the region.
	ContentsMarker = "## Contents"
)

// Updater rewrites the "latest report" region of an index document.
type Updater struct {
	// indexPath is the index document to rewrite, typically README.md.
	indexPath string

	// reportsDir is the directory name used in the reference link,
	// relative to the index document.
	reportsDir string
}

// Option configures an Updater.
type Option func(*Updater)

// WithReportsDir sets the directory used in generated reference links.
func WithReportsDir(dir string) Option {
	return func(u *Updater) {
		u.reportsDir = dir
	}
}

// NewUpdater creates an Updater for the given index document.
func NewUpdater(indexPath string, opts ...Option) *Updater {
	u := &Updater{
		indexPath:  indexPath,
		reportsDir: "reports",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Update points the index document at reportPath.
//
// A missing index document is not an error: nothing is written and false is
// returned. Otherwise the document is rewritten in place and true is returned.
func (u *Updater) Update(reportPath string) (bool, error) {
	info, err := os.Stat(u.indexPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat index document: %w", err)
	}

	data, err := os.ReadFile(u.indexPath)
	if err != nil {
		return false, fmt.Errorf("failed to read index document: %w", err)
	}

	updated := Rewrite(string(data), u.ReferenceLine(reportPath))

	if err := os.WriteFile(u.indexPath, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write index document: %w", err)
	}
	return true, nil
}

// ReferenceLine returns the Markdown list item linking to reportPath.
func (u *Updater) ReferenceLine(reportPath string) string {
	base := filepath.Base(reportPath)
	return fmt.Sprintf("- [%s](%s)", base, path.Join(u.reportsDir, base))
}

// Rewrite replaces the first region between LatestMarker and the following
// ContentsMarker with a single reference line. When the markers are not found
// in that order, a new latest-report section is appended instead.
func Rewrite(content, referenceLine string) string {
	start := strings.Index(content, LatestMarker)
	if start >= 0 {
		if rel := strings.Index(content[start+len(LatestMarker):], ContentsMarker); rel >= 0 {
			end := start + len(LatestMarker) + rel + len(ContentsMarker)
			return content[:start] +
				LatestMarker + "\n\n" + referenceLine + "\n\n" + ContentsMarker +
				content[end:]
		}
	}
	return content + "\n\n" + LatestMarker + "\n\n" + referenceLine + "\n"
}
