// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain holds the types and ports shared by the search pipeline,
// the privileged package operations and the front-ends.
package domain

import "strings"

// PackageRecord is one parsed entry of a search listing.
//
// Installed is provisional when it comes straight from the parser and
// authoritative once the installed-state resolver has run.
type PackageRecord struct {
	Repository  string `json:"repository"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Installed   bool   `json:"installed"`
}

// ID returns the "repository/name" form the search tool prints.
func (r PackageRecord) ID() string {
	return r.Repository + "/" + r.Name
}

// IsValid reports whether the record carries the fields every emitted record must have.
func (r PackageRecord) IsValid() bool {
	return strings.TrimSpace(r.Repository) != "" && strings.TrimSpace(r.Name) != ""
}

// Summary holds the aggregate counts shown in status displays.
type Summary struct {
	Total     int `json:"total"`
	Installed int `json:"installed"`
}

// Summarize counts records and installed records.
func Summarize(records []PackageRecord) Summary {
	summary := Summary{Total: len(records)}

	for _, record := range records {
		if record.Installed {
			summary.Installed++
		}
	}

	return summary
}
