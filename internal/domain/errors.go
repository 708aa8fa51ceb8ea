// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"errors"
	"strings"
)

// Common domain errors.
var (
	// ErrSpawnFailed indicates the subprocess could not be created.
	ErrSpawnFailed = errors.New("failed to start command")
	// ErrCommandFailed indicates the subprocess ran but exited non-zero.
	ErrCommandFailed = errors.New("command failed")
	// ErrAuthenticationFailed indicates sudo rejected the cached credential.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrNoCredential indicates a privileged operation was requested without a cached credential.
	ErrNoCredential = errors.New("no sudo password cached")
	// ErrInvalidPackageName indicates a package name that is empty or would be read as a flag.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidQuery indicates a search term that would be read as a flag.
	ErrInvalidQuery = errors.New("invalid search query")
)

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
}

// getErrorMatchers returns the known errors and their corresponding info.
func getErrorMatchers() []struct {
	target  error
	getInfo func(string) ErrorInfo
} {
	return []struct {
		target  error
		getInfo func(string) ErrorInfo
	}{
		{
			target: context.Canceled,
			getInfo: func(_ string) ErrorInfo {
				return ErrorInfo{Message: "Operation cancelled"}
			},
		},
		{
			target: context.DeadlineExceeded,
			getInfo: func(_ string) ErrorInfo {
				return ErrorInfo{
					Message:     "Operation timed out",
					Suggestions: []string{"Raise --timeout or set it to 0"},
				}
			},
		},
		{
			target: ErrNoCredential,
			getInfo: func(_ string) ErrorInfo {
				return ErrorInfo{
					Message:     "No sudo password cached",
					Suggestions: []string{"Restart and enter your password at the prompt"},
				}
			},
		},
		{
			target: ErrAuthenticationFailed,
			getInfo: func(_ string) ErrorInfo {
				return ErrorInfo{
					Message:     "Authentication failed",
					Suggestions: []string{"Check your sudo password", "Make sure your user is in the sudoers file"},
				}
			},
		},
		{
			target: ErrSpawnFailed,
			getInfo: func(_ string) ErrorInfo {
				return ErrorInfo{
					Message:     "Could not start the package tool",
					Suggestions: []string{"Run 'pkgcenter doctor' to check the required tools"},
				}
			},
		},
		{
			target: ErrInvalidPackageName,
			getInfo: func(pkg string) ErrorInfo {
				return ErrorInfo{
					Message:     "Invalid package name '" + pkg + "'",
					Suggestions: []string{"Package names cannot be empty or start with '-'"},
				}
			},
		},
		{
			target: ErrInvalidQuery,
			getInfo: func(_ string) ErrorInfo {
				return ErrorInfo{
					Message:     "Invalid search query",
					Suggestions: []string{"Search terms cannot start with '-'"},
				}
			},
		},
		{
			target: ErrCommandFailed,
			getInfo: func(pkg string) ErrorInfo {
				if pkg != "" {
					return ErrorInfo{
						Message:     "The package tool failed for '" + pkg + "'",
						Suggestions: []string{"Check terminal logs or run yay manually"},
					}
				}

				return ErrorInfo{
					Message:     "The package tool failed",
					Suggestions: []string{"Check terminal logs or run yay manually"},
				}
			},
		},
	}
}

// GetErrorInfo analyzes an error and returns user-friendly information.
func GetErrorInfo(err error, packageName string) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	for _, matcher := range getErrorMatchers() {
		if errors.Is(err, matcher.target) {
			return matcher.getInfo(packageName)
		}
	}

	return ErrorInfo{
		Message:     "Operation failed",
		Suggestions: []string{"Run with --verbose for more details"},
	}
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, packageName string, verbose bool) string {
	info := GetErrorInfo(err, packageName)

	var result strings.Builder

	result.WriteString(info.Message)

	if verbose && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	switch {
	case len(info.Suggestions) > 0 && !verbose:
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	case len(info.Suggestions) > 0:
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
