// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package yay speaks the command-line dialect of yay: it builds the argument
// vectors for search, install, remove and cleanup and parses search listings.
package yay

import (
	"strings"
	"unicode"

	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/stringutil"
)

// installedMarkers are the annotations the search tool appends to installed packages.
var installedMarkers = []string{"[installed]", "(installed)"} //nolint:gochecknoglobals

// ParseSearch parses sanitized "-Ss" output into package records.
//
// A listing entry is a header line "repo/name version [annotations]" followed
// by an indented description line. A record is emitted only once its
// description has been read: a header followed by another header or by the
// end of input is dropped, and so is a header without a version or whose
// first token is not a non-empty "repo/name" pair.
func ParseSearch(text string) []domain.PackageRecord {
	var (
		records       []domain.PackageRecord
		current       domain.PackageRecord
		expectingDesc bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case line == "":
			expectingDesc = false

		case line[0] == ' ' || line[0] == '\t':
			if !expectingDesc {
				continue
			}

			current.Description = strings.TrimLeft(line, " \t")
			records = append(records, current)
			expectingDesc = false

		default:
			header, ok := parseHeader(line)
			if !ok {
				continue
			}

			current = header
			expectingDesc = true
		}
	}

	return records
}

// parseHeader reads "repo/name version rest...". The installed flag it sets
// is only the search tool's claim.
func parseHeader(line string) (domain.PackageRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return domain.PackageRecord{}, false
	}

	repo, name, found := strings.Cut(fields[0], "/")
	if !found || repo == "" || name == "" {
		return domain.PackageRecord{}, false
	}

	rest := strings.TrimLeftFunc(line, unicode.IsSpace)[len(fields[0]):]
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)[len(fields[1]):]

	return domain.PackageRecord{
		Repository: repo,
		Name:       name,
		Version:    fields[1],
		Installed:  stringutil.ContainsAny(rest, installedMarkers),
	}, true
}
