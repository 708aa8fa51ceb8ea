// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/janderssonse/pkgcenter/internal/domain"
)

// DefaultOSReleasePaths are tried in order, as os-release(5) prescribes.
var DefaultOSReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// SystemDetector identifies the distribution pkgcenter runs on.
type SystemDetector struct {
	paths []string
}

// NewSystemDetector creates a detector reading the given os-release files,
// or DefaultOSReleasePaths when none are given.
func NewSystemDetector(paths ...string) *SystemDetector {
	if len(paths) == 0 {
		paths = DefaultOSReleasePaths
	}

	return &SystemDetector{paths: paths}
}

// DetectDistribution returns the first readable os-release description.
// An unreadable system yields domain.UnknownDistribution, not an error.
func (d *SystemDetector) DetectDistribution(_ context.Context) *domain.Distribution {
	for _, path := range d.paths {
		data, err := os.ReadFile(path) //nolint:gosec // fixed system paths
		if err != nil {
			continue
		}

		return parseOSRelease(data)
	}

	return domain.UnknownDistribution()
}

func parseOSRelease(data []byte) *domain.Distribution {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		fields[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	dist := &domain.Distribution{
		Name:    fields["PRETTY_NAME"],
		ID:      strings.ToLower(fields["ID"]),
		IDLike:  strings.Fields(strings.ToLower(fields["ID_LIKE"])),
		Version: fields["VERSION_ID"],
	}

	if dist.Name == "" {
		dist.Name = fields["NAME"]
	}

	if dist.ID == "" {
		dist.ID = "linux"
	}

	return dist
}
