// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"errors"
	"fmt"
)

// Exit codes follow standard Unix conventions for better scripting support.
// Range 0-125 are safe to use (126+ have special meaning in shells).
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Generic failure (catch-all)
	ExitUsageError      = 2  // Invalid command line usage
	ExitConfigError     = 3  // Configuration file error
	ExitPermissionError = 4  // Authentication failed or no credential
	ExitDependencyError = 10 // Package tool missing from PATH
	ExitSystemError     = 12 // Lock or filesystem failure
	ExitTimeoutError    = 13 // Operation timed out
	ExitInterruptError  = 14 // User interrupted (Ctrl+C)
	ExitPackageError    = 22 // Package tool reported failure
)

// ExitError provides specific exit codes for different failure modes.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an operation error onto the exit code table.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.Is(err, context.Canceled):
		return ExitInterruptError
	case errors.Is(err, ErrAuthenticationFailed), errors.Is(err, ErrNoCredential):
		return ExitPermissionError
	case errors.Is(err, ErrInvalidPackageName), errors.Is(err, ErrInvalidQuery):
		return ExitUsageError
	case errors.Is(err, ErrSpawnFailed):
		return ExitDependencyError
	case errors.Is(err, ErrCommandFailed):
		return ExitPackageError
	default:
		return ExitGeneralError
	}
}
