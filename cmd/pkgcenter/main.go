// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for pkgcenter.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/janderssonse/pkgcenter/internal/cli"
	"github.com/janderssonse/pkgcenter/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Only one pkgcenter may drive the package tool at a time.
	lockPath := filepath.Join(os.TempDir(), "pkgcenter.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return domain.ExitSystemError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another pkgcenter instance is already running\n")

		return domain.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewCLI().Run(ctx, os.Args); err != nil {
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "%s\n", exitErr.Message)
			}

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)

		return domain.ExitCodeFor(err)
	}

	return domain.ExitSuccess
}
