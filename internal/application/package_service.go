// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

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
)

// PackageService runs install, remove and cleanup through the AUR helper.
//
// The helper runs as the normal user and calls sudo itself; each operation
// first refreshes sudo's credential cache with the session's password so the
// helper never has to prompt.
type PackageService struct {
	runner domain.ProcessRunner
	tools  yay.Tools
	logger *log.Logger
}

// NewPackageService creates a service driving the given tools.
func NewPackageService(runner domain.ProcessRunner, tools yay.Tools, logger *log.Logger) *PackageService {
	defaults := yay.DefaultTools()

	if tools.Search == "" {
		tools.Search = defaults.Search
	}

	if tools.Sudo == "" {
		tools.Sudo = defaults.Sudo
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &PackageService{
		runner: runner,
		tools:  tools,
		logger: logger,
	}
}

// Authenticate checks the session's credential with "sudo -S -v".
func (s *PackageService) Authenticate(ctx context.Context, session *domain.Session) error {
	secret, err := session.Credential()
	if err != nil {
		return err
	}

	if err := s.runner.RunWithStdin(ctx, secret, s.tools.Sudo, yay.ValidateArgs()...); err != nil {
		if ctx.Err() != nil {
			return err
		}

		return fmt.Errorf("%w: %w", domain.ErrAuthenticationFailed, err)
	}

	return nil
}

// Install installs pkg without interactive questions.
func (s *PackageService) Install(ctx context.Context, session *domain.Session, pkg string, yield domain.YieldFunc) error {
	if err := validatePackageName(pkg); err != nil {
		return err
	}

	return s.privileged(ctx, session, yield, "install "+pkg, yay.InstallArgs(pkg))
}

// Remove removes pkg together with its unneeded dependencies.
func (s *PackageService) Remove(ctx context.Context, session *domain.Session, pkg string, yield domain.YieldFunc) error {
	if err := validatePackageName(pkg); err != nil {
		return err
	}

	return s.privileged(ctx, session, yield, "remove "+pkg, yay.RemoveArgs(pkg))
}

// CleanOrphans removes packages no longer required by anything.
func (s *PackageService) CleanOrphans(ctx context.Context, session *domain.Session, yield domain.YieldFunc) error {
	return s.privileged(ctx, session, yield, "clean orphans", yay.CleanArgs())
}

func (s *PackageService) privileged(ctx context.Context, session *domain.Session, yield domain.YieldFunc, what string, args []string) error {
	if err := s.Authenticate(ctx, session); err != nil {
		s.logger.Warn("pre-authentication failed", "op", what, "err", err)

		return err
	}

	s.logger.Info("running", "op", what)

	if err := s.runner.Status(ctx, yield, s.tools.Search, args...); err != nil {
		s.logger.Warn("operation failed", "op", what, "err", err)

		return fmt.Errorf("%s: %w", what, err)
	}

	s.logger.Info("finished", "op", what)

	return nil
}

func validatePackageName(pkg string) error {
	if strings.TrimSpace(pkg) == "" || stringutil.LooksLikeFlag(pkg) || strings.ContainsAny(pkg, " \t\n") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPackageName, pkg)
	}

	return nil
}
