// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGetErrorInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		packageName string
		wantMessage string
	}{
		{
			name:        "nil error",
			err:         nil,
			wantMessage: "",
		},
		{
			name:        "wrapped authentication failure",
			err:         fmt.Errorf("pre-authenticate: %w", domain.ErrAuthenticationFailed),
			wantMessage: "Authentication failed",
		},
		{
			name:        "missing credential",
			err:         domain.ErrNoCredential,
			wantMessage: "No sudo password cached",
		},
		{
			name:        "command failure names the package",
			err:         fmt.Errorf("%w: exit status 1", domain.ErrCommandFailed),
			packageName: "foo",
			wantMessage: "The package tool failed for 'foo'",
		},
		{
			name:        "spawn failure",
			err:         fmt.Errorf("%w: yay", domain.ErrSpawnFailed),
			wantMessage: "Could not start the package tool",
		},
		{
			name:        "cancelled",
			err:         fmt.Errorf("search: %w", context.Canceled),
			wantMessage: "Operation cancelled",
		},
		{
			name:        "timed out",
			err:         context.DeadlineExceeded,
			wantMessage: "Operation timed out",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantMessage: "Operation failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := domain.GetErrorInfo(tc.err, tc.packageName)
			assert.Equal(t, tc.wantMessage, info.Message)
		})
	}
}

func TestFormatErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("non-verbose shows first suggestion inline", func(t *testing.T) {
		t.Parallel()

		msg := domain.FormatErrorMessage(domain.ErrAuthenticationFailed, "", false)
		assert.Equal(t, "Authentication failed (Check your sudo password)", msg)
	})

	t.Run("verbose shows details and all suggestions", func(t *testing.T) {
		t.Parallel()

		msg := domain.FormatErrorMessage(domain.ErrAuthenticationFailed, "", true)
		assert.Contains(t, msg, "Technical details: authentication failed")
		assert.Contains(t, msg, "• Check your sudo password")
		assert.Contains(t, msg, "• Make sure your user is in the sudoers file")
	})
}
