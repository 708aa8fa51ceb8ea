// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Search outputs the records of one search with their summary.
	Search(result SearchResult) error

	// Success outputs a success message.
	Success(message string) error

	// Error outputs an error message.
	Error(message string) error

	// Info outputs an informational message.
	Info(message string) error

	// IsQuiet returns true if output should be suppressed.
	IsQuiet() bool
}

// SearchResult is what a front-end renders after a search.
type SearchResult struct {
	Query    string          `json:"query"`
	Packages []PackageRecord `json:"packages"`
	Summary  Summary         `json:"summary"`
}

// NewSearchResult bundles records with their summary.
func NewSearchResult(query string, records []PackageRecord) SearchResult {
	if records == nil {
		records = []PackageRecord{}
	}

	return SearchResult{
		Query:    query,
		Packages: records,
		Summary:  Summarize(records),
	}
}
