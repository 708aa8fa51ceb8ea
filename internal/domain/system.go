// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "slices"

const distroArch = "arch"

// Distribution describes the running Linux distribution as os-release
// reports it.
type Distribution struct {
	Name    string   `json:"name"`
	ID      string   `json:"id"`
	IDLike  []string `json:"id_like,omitempty"`
	Version string   `json:"version,omitempty"`
}

// UnknownDistribution is reported when no os-release file can be read.
func UnknownDistribution() *Distribution {
	return &Distribution{Name: "Unknown", ID: "unknown"}
}

// IsArchBased reports whether pacman and the AUR helpers are expected to
// work, either on Arch itself or on a derivative that declares it.
func (d *Distribution) IsArchBased() bool {
	if d == nil {
		return false
	}

	return d.ID == distroArch || slices.Contains(d.IDLike, distroArch)
}
