// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console writes human-facing status messages to stderr, leaving
// stdout to command results.
package console

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// OutputState holds output configuration.
type OutputState struct {
	Verbose bool
	JSON    bool
	Plain   bool

	stderr io.Writer
}

// New creates an output state writing to stderr.
func New(verbose, json, plain bool) *OutputState {
	return NewWithWriter(os.Stderr, verbose, json, plain)
}

// NewWithWriter creates an output state writing to w for testing.
func NewWithWriter(w io.Writer, verbose, json, plain bool) *OutputState {
	return &OutputState{Verbose: verbose, JSON: json, Plain: plain, stderr: w}
}

// IsTTY checks if a descriptor is a terminal (not piped/redirected).
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Interactive reports whether both stdin and stdout are terminals, which the
// password prompt and confirmation dialogs need.
func Interactive() bool {
	return IsTTY(os.Stdin.Fd()) && IsTTY(os.Stdout.Fd())
}

// ColorEnabled follows no-color.org.
func ColorEnabled() bool {
	return os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
}

// Progressf writes progress messages (only if verbose and not JSON/Plain).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr, format+"\n", args...)
	}
}

// Successf writes success messages (only if not JSON/Plain).
func (o *OutputState) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr, "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages (always visible).
func (o *OutputState) Warningf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr, "warning: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.stderr, "⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages (always visible).
func (o *OutputState) Errorf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr, "error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.stderr, "✗ "+format+"\n", args...)
	}
}

// Notice reports the outcome of an operation as a success or error line.
func (o *OutputState) Notice(ok bool, success, failure string) {
	if ok {
		o.Successf("%s", success)

		return
	}

	o.Errorf("%s", failure)
}
