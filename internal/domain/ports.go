// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "context"

// YieldFunc is called by the process runner after every chunk of output it
// reads, with the size of that chunk. Front-ends hosting an event loop use it
// to stay responsive; a nil YieldFunc is allowed.
type YieldFunc func(n int)

// ProcessRunner defines the interface for executing external commands.
// Commands are always argument vectors; nothing goes through a shell.
type ProcessRunner interface {
	// Capture runs a command and returns everything it wrote to standard output.
	// The exit status is not inspected.
	Capture(ctx context.Context, yield YieldFunc, name string, args ...string) (string, error)

	// Status runs a command, discards its output and reports whether it exited zero.
	Status(ctx context.Context, yield YieldFunc, name string, args ...string) error

	// RunWithStdin feeds input plus a newline to the command's standard input
	// and waits for it. It never yields.
	RunWithStdin(ctx context.Context, input, name string, args ...string) error

	// CommandExists checks if a command is available on the system.
	CommandExists(name string) bool
}

// InstalledChecker answers whether a package is present in the local package database.
type InstalledChecker interface {
	// IsInstalled returns false for any failure.
	IsInstalled(ctx context.Context, name string) bool
}
