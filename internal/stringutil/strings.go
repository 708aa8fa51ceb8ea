// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package stringutil provides string utility functions for pkgcenter.
package stringutil

import "strings"

// ContainsAny checks if text contains any of the provided substrings.
func ContainsAny(text string, substrings []string) bool {
	for _, substr := range substrings {
		if strings.Contains(text, substr) {
			return true
		}
	}

	return false
}

// LooksLikeFlag reports whether an argument would be parsed as an option
// by the package tools.
func LooksLikeFlag(arg string) bool {
	return strings.HasPrefix(arg, "-")
}

// AnyLooksLikeFlag reports whether any argument would be parsed as an option.
func AnyLooksLikeFlag(args []string) bool {
	for _, arg := range args {
		if LooksLikeFlag(arg) {
			return true
		}
	}

	return false
}
