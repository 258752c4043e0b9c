package model

// GitHubBaseURL is the web root used to build repository links.
const GitHubBaseURL = "https://github.com"

// Repository is one entry scanned from the trending listing.
//
// Name is the "owner/name" identifier and is unique within a single run.
// Description is filled by the first description paragraph that follows the
// repository anchor and never overwritten afterwards.
type Repository struct {
	// Name is the repository identifier in "owner/name" form.
	Name string

	// DisplayText is the whitespace-collapsed anchor text.
	DisplayText string

	// Description is the listing's description paragraph, if any.
	Description string

	// Summary holds excerpts extracted from the repository README.
	// It stays empty when enrichment is disabled or the README fetch fails.
	Summary ReadmeSummary
}

// URL returns the GitHub web URL of the repository.
func (r Repository) URL() string {
	return GitHubBaseURL + "/" + r.Name
}

// Introduction returns the text shown as the repository's introduction.
// The listing description wins; the README introduction is the fallback.
func (r Repository) Introduction() string {
	if r.Description != "" {
		return r.Description
	}
	return r.Summary.Introduction
}

// ReadmeSummary contains the bounded excerpts taken from a README.
type ReadmeSummary struct {
	// Introduction is the overview/about section.
	Introduction string

	// Scenario describes use cases.
	Scenario string

	// Install is the installation section.
	Install string

	// Usage is the usage/quick start section.
	Usage string

	// Meaning explains why the project matters (motivation, why, features).
	Meaning string
}

// IsEmpty reports whether no excerpt was extracted.
func (s ReadmeSummary) IsEmpty() bool {
	return s.Introduction == "" &&
		s.Scenario == "" &&
		s.Install == "" &&
		s.Usage == "" &&
		s.Meaning == ""
}
