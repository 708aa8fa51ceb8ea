// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application orchestrates the search pipeline and the privileged
// package operations on top of the domain ports.
package application

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/janderssonse/pkgcenter/internal/adapters/yay"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/stringutil"
	"github.com/janderssonse/pkgcenter/internal/termtext"
)

// SearchService runs a search through the external tool and turns its
// listing into package records with verified installed state.
type SearchService struct {
	runner  domain.ProcessRunner
	checker domain.InstalledChecker
	tool    string
	logger  *log.Logger
}

// NewSearchService creates a search service using tool for "-Ss" queries.
func NewSearchService(runner domain.ProcessRunner, checker domain.InstalledChecker, tool string, logger *log.Logger) *SearchService {
	if tool == "" {
		tool = yay.DefaultSearchTool
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &SearchService{
		runner:  runner,
		checker: checker,
		tool:    tool,
		logger:  logger,
	}
}

// Search captures the tool's listing for query, strips terminal control
// sequences, parses it and resolves each record against the local database.
//
// A blank query returns no records without starting a process. Query terms
// are passed as separate arguments; a term starting with '-' is rejected.
func (s *SearchService) Search(ctx context.Context, query string, yield domain.YieldFunc) ([]domain.PackageRecord, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return []domain.PackageRecord{}, nil
	}

	if stringutil.AnyLooksLikeFlag(terms) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidQuery, query)
	}

	output, err := s.runner.Capture(ctx, yield, s.tool, yay.SearchArgs(terms)...)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	records := yay.ParseSearch(termtext.Strip(output))
	yay.Resolve(ctx, s.checker, records)

	if records == nil {
		records = []domain.PackageRecord{}
	}

	summary := domain.Summarize(records)
	s.logger.Debug("search finished", "query", query, "total", summary.Total, "installed", summary.Installed)

	return records, nil
}
