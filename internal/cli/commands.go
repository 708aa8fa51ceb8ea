// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/janderssonse/pkgcenter/internal/adapters/platform"
	"github.com/janderssonse/pkgcenter/internal/config"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/logging"
	"github.com/janderssonse/pkgcenter/internal/tui"
	"github.com/urfave/cli/v3"
)

// privilegedFunc is one of the package service's install, remove or clean calls.
type privilegedFunc func(ctx context.Context, session *domain.Session, yield domain.YieldFunc) error

func (app *CLI) createSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the repositories and the AUR",
		ArgsUsage: "<terms...>",
		Description: `Runs the AUR helper's search, strips its colors, and marks each result
that the package database reports as installed.

EXAMPLES:
  pkgcenter search firefox
  pkgcenter --json search neovim lua
  pkgcenter --plain search vim | grep installed`,
		Action: app.runSearch,
	}
}

func (app *CLI) runSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return domain.NewExitError(domain.ExitUsageError, "Usage: pkgcenter search <terms...>", ErrMissingArgument)
	}

	app.console.Progressf("Searching for %q...", query)

	records, err := app.search.Search(ctx, query, app.progress("search"))
	if err != nil {
		return app.fail(err, "")
	}

	return app.output.Search(domain.NewSearchResult(query, records))
}

func (app *CLI) createInstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install a package",
		ArgsUsage: "<package>",
		Description: `Installs one package with the AUR helper. Asks for confirmation unless
--yes is given, and for the sudo password unless --password-stdin is given.

EXAMPLES:
  pkgcenter install firefox
  echo "$PASS" | pkgcenter --yes --password-stdin install firefox`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			pkg, err := packageArg(cmd)
			if err != nil {
				return err
			}

			return app.runPrivileged(ctx, "Install", pkg,
				func(ctx context.Context, session *domain.Session, yield domain.YieldFunc) error {
					return app.packages.Install(ctx, session, pkg, yield)
				})
		},
	}
}

func (app *CLI) createRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove a package with its unneeded dependencies",
		ArgsUsage: "<package>",
		Aliases:   []string{"uninstall"},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			pkg, err := packageArg(cmd)
			if err != nil {
				return err
			}

			return app.runPrivileged(ctx, "Remove", pkg,
				func(ctx context.Context, session *domain.Session, yield domain.YieldFunc) error {
					return app.packages.Remove(ctx, session, pkg, yield)
				})
		},
	}
}

func (app *CLI) createCleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Remove orphaned packages",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return app.runPrivileged(ctx, "Clean", "", app.packages.CleanOrphans)
		},
	}
}

func packageArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		usage := fmt.Sprintf("Usage: pkgcenter %s <package>", cmd.Name)

		return "", domain.NewExitError(domain.ExitUsageError, usage, ErrMissingArgument)
	}

	return cmd.Args().First(), nil
}

// runPrivileged confirms, authenticates and runs op with a session that is
// cleared before returning.
func (app *CLI) runPrivileged(ctx context.Context, verb, pkg string, op privilegedFunc) error {
	target := pkg
	if target == "" {
		target = "orphaned packages"
	}

	if err := app.confirm(fmt.Sprintf("%s %s?", verb, target), "This runs the package tool with sudo."); err != nil {
		return err
	}

	secret, err := app.readPassword()
	if err != nil {
		return passwordError(err)
	}

	session := domain.NewSession(secret)
	defer session.Clear()

	if err := app.packages.Authenticate(ctx, session); err != nil {
		return app.fail(err, pkg)
	}

	app.console.Progressf("%s %s...", verb, target)

	if err := op(ctx, session, app.progress(strings.ToLower(verb))); err != nil {
		return app.fail(err, pkg)
	}

	return app.output.Success(fmt.Sprintf("%s %s: done", verb, target))
}

func passwordError(err error) error {
	var exitErr *domain.ExitError

	switch {
	case errors.As(err, &exitErr):
		return exitErr
	case errors.Is(err, huh.ErrUserAborted):
		return domain.NewExitError(domain.ExitInterruptError, "Prompt cancelled", err)
	default:
		return domain.NewExitError(domain.ExitUsageError, "Could not read the sudo password", err)
	}
}

// progress returns a yield hook that logs how much output the tool produced.
func (app *CLI) progress(op string) domain.YieldFunc {
	total := 0

	return func(n int) {
		total += n
		app.logger.Debug("output", "op", op, "bytes", total)
	}
}

func (app *CLI) createDoctorCommand() *cli.Command {
	return &cli.Command{
		Name:   "doctor",
		Usage:  "Check that the package tools are available",
		Action: app.runDoctor,
	}
}

func (app *CLI) runDoctor(ctx context.Context, _ *cli.Command) error {
	dist := platform.NewSystemDetector(app.release...).DetectDistribution(ctx)
	if dist.IsArchBased() {
		_ = app.output.Success("distribution: " + dist.Name)
	} else {
		app.console.Warningf("%s is not Arch-based; the package tools may not work", dist.Name)
	}

	tools := []struct {
		role string
		name string
	}{
		{"search", app.cfg.Tools.Search},
		{"database", app.cfg.Tools.Database},
		{"sudo", app.cfg.Tools.Sudo},
	}

	var missing []string

	for _, tool := range tools {
		if app.runner.CommandExists(tool.name) {
			_ = app.output.Success(fmt.Sprintf("%s tool %s: found", tool.role, tool.name))

			continue
		}

		missing = append(missing, tool.name)
		_ = app.output.Error(fmt.Sprintf("%s tool %s not found on PATH", tool.role, tool.name))
	}

	path := app.flags.configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		_ = app.output.Info("config: " + path)
	} else {
		_ = app.output.Info("config: defaults (no " + path + ")")
	}

	if len(missing) > 0 {
		return domain.NewExitError(domain.ExitDependencyError,
			"Missing required tools: "+strings.Join(missing, ", "), nil)
	}

	return nil
}

func (app *CLI) createTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive interface",
		Description: `Asks for the sudo password once, then lets you search, install, remove
and clean packages from one screen. Press ? inside for the key reference.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return app.runTUI(ctx)
		},
	}
}

// runTUI hands the terminal to the interactive interface. Logs go to
// --log-file or nowhere, since the interface owns the screen.
func (app *CLI) runTUI(ctx context.Context) error {
	if app.flags.logFile == "" {
		app.wire(logging.Discard())
	}

	if err := tui.Launch(ctx, app.search, app.packages); err != nil {
		if app.flags.verbose {
			return domain.NewExitError(domain.ExitGeneralError, fmt.Sprintf("Failed to launch TUI: %v", err), err)
		}

		return domain.NewExitError(domain.ExitGeneralError, "Failed to launch interactive interface (terminal required)", err)
	}

	return nil
}
