// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package yay

import (
	"context"

	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/stringutil"
)

// PacmanChecker answers installed-state queries from the local package database.
type PacmanChecker struct {
	runner domain.ProcessRunner
	tool   string
}

// NewPacmanChecker creates a checker running "<tool> -Qi <name>".
func NewPacmanChecker(runner domain.ProcessRunner, tool string) *PacmanChecker {
	if tool == "" {
		tool = DefaultDatabaseTool
	}

	return &PacmanChecker{runner: runner, tool: tool}
}

// IsInstalled reports whether the query exits zero. Any failure counts as not installed.
func (c *PacmanChecker) IsInstalled(ctx context.Context, name string) bool {
	if name == "" || stringutil.LooksLikeFlag(name) {
		return false
	}

	return c.runner.Status(ctx, nil, c.tool, QueryArgs(name)...) == nil
}

// Resolve overwrites the installed flag of every record, in order, with the
// checker's answer. The search tool's own annotation is not trusted.
func Resolve(ctx context.Context, checker domain.InstalledChecker, records []domain.PackageRecord) {
	for i := range records {
		records[i].Installed = checker.IsInstalled(ctx, records[i].Name)
	}
}
