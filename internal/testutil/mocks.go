// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package testutil

import (
	"context"

	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProcessRunner mocks the ProcessRunner port for testing.
// Expectations are set on the command name followed by its arguments.
type MockProcessRunner struct {
	mock.Mock
}

// Capture mocks output capture.
func (m *MockProcessRunner) Capture(ctx context.Context, yield domain.YieldFunc, name string, args ...string) (string, error) {
	call := m.Called(ctx, name, args)

	if output := call.String(0); output != "" && yield != nil {
		yield(len(output))
	}

	return call.String(0), call.Error(1)
}

// Status mocks a status-only run.
func (m *MockProcessRunner) Status(ctx context.Context, _ domain.YieldFunc, name string, args ...string) error {
	return m.Called(ctx, name, args).Error(0)
}

// RunWithStdin mocks a run fed through standard input.
func (m *MockProcessRunner) RunWithStdin(ctx context.Context, input, name string, args ...string) error {
	return m.Called(ctx, input, name, args).Error(0)
}

// CommandExists mocks a PATH lookup.
func (m *MockProcessRunner) CommandExists(name string) bool {
	return m.Called(name).Bool(0)
}

// MockInstalledChecker mocks the InstalledChecker port for testing.
type MockInstalledChecker struct {
	mock.Mock
}

// IsInstalled mocks a local package database query.
func (m *MockInstalledChecker) IsInstalled(ctx context.Context, name string) bool {
	return m.Called(ctx, name).Bool(0)
}

// StaticChecker reports the packages in its set as installed.
type StaticChecker map[string]bool

// IsInstalled reports whether name is in the set.
func (s StaticChecker) IsInstalled(_ context.Context, name string) bool {
	return s[name]
}
