// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the pkgcenter command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	cliAdapter "github.com/janderssonse/pkgcenter/internal/adapters/cli"
	"github.com/janderssonse/pkgcenter/internal/adapters/platform"
	"github.com/janderssonse/pkgcenter/internal/adapters/yay"
	"github.com/janderssonse/pkgcenter/internal/application"
	"github.com/janderssonse/pkgcenter/internal/config"
	"github.com/janderssonse/pkgcenter/internal/console"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/logging"
	"github.com/urfave/cli/v3"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var (
	// ErrConflictingFlags is returned when --json and --plain are combined.
	ErrConflictingFlags = errors.New("cannot use both --json and --plain flags simultaneously")
	// ErrMissingArgument is returned when a command needs an argument.
	ErrMissingArgument = errors.New("missing argument")
	// ErrPasswordRequired is returned when no password source is available.
	ErrPasswordRequired = errors.New("password required")
	// ErrNotConfirmed is returned when the user declines an operation.
	ErrNotConfirmed = errors.New("operation not confirmed")
)

// flags holds the global flag values.
type flags struct {
	verbose       bool
	json          bool
	plain         bool
	quiet         bool
	format        string
	dryRun        bool
	timeout       time.Duration
	configPath    string
	searchTool    string
	dbTool        string
	logFile       string
	passwordStdin bool
	yes           bool
}

// CLI wires the search and package services to urfave/cli commands.
type CLI struct {
	app   *cli.Command
	flags flags

	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	spawner  platform.Spawner
	prompter Prompter
	isTTY    func() bool
	release  []string

	cfg      *config.Config
	logger   *log.Logger
	closers  []io.Closer
	cancel   context.CancelFunc
	runner   *platform.CommandRunner
	search   *application.SearchService
	packages *application.PackageService
	console  *console.OutputState
	output   domain.OutputPort
}

// Option customizes a CLI, mostly for tests.
type Option func(*CLI)

// WithIO replaces the standard streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(app *CLI) {
		app.stdin = stdin
		app.stdout = stdout
		app.stderr = stderr
	}
}

// WithSpawner replaces the process backend.
func WithSpawner(spawner platform.Spawner) Option {
	return func(app *CLI) {
		app.spawner = spawner
	}
}

// WithPrompter replaces the interactive password and confirmation prompts.
func WithPrompter(prompter Prompter) Option {
	return func(app *CLI) {
		app.prompter = prompter
	}
}

// WithInteractive overrides terminal detection for prompts.
func WithInteractive(interactive bool) Option {
	return func(app *CLI) {
		app.isTTY = func() bool { return interactive }
	}
}

// WithOSRelease replaces the os-release files doctor reads.
func WithOSRelease(paths ...string) Option {
	return func(app *CLI) {
		app.release = paths
	}
}

// NewCLI creates the command tree.
func NewCLI(opts ...Option) *CLI {
	app := &CLI{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.prompter == nil {
		app.prompter = huhPrompter{}
	}

	if app.isTTY == nil {
		app.isTTY = console.Interactive
	}

	app.app = &cli.Command{
		Name:    "pkgcenter",
		Usage:   "Search, install and remove Arch packages through yay",
		Version: Version,
		Suggest: true,
		Description: `A small package center for Arch Linux. Searches the repositories and the AUR
through yay, marks what is installed, and runs installs and removals with
a sudo password that is held in memory for the session only.

EXAMPLES:
  pkgcenter search firefox           Search packages
  pkgcenter --plain search vim       One result per line for scripts
  pkgcenter install firefox          Install after confirmation
  pkgcenter --yes remove firefox     Remove without confirmation
  pkgcenter clean                    Remove orphaned packages
  pkgcenter                          Start the interactive interface`,
		Reader:    app.stdin,
		Writer:    app.stdout,
		ErrWriter: app.stderr,
		Flags:     app.globalFlags(),
		Before:    app.initConfig,
		After:     app.shutdown,
		Action:    app.defaultAction,
		Commands: []*cli.Command{
			app.createSearchCommand(),
			app.createInstallCommand(),
			app.createRemoveCommand(),
			app.createCleanCommand(),
			app.createDoctorCommand(),
			app.createTUICommand(),
		},
	}

	return app
}

// App provides the root command for main.
func App() *cli.Command {
	return NewCLI().app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

func (app *CLI) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "show debug logging and detailed errors",
			Destination: &app.flags.verbose,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output structured JSON results",
			Aliases:     []string{"j"},
			Destination: &app.flags.json,
		},
		&cli.BoolFlag{
			Name:        "plain",
			Usage:       "output plain text without formatting for scripts",
			Destination: &app.flags.plain,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Usage:       "suppress non-essential output",
			Aliases:     []string{"q"},
			Destination: &app.flags.quiet,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "output format: text, json or plain (overrides --json/--plain)",
			Destination: &app.flags.format,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "log commands instead of running them",
			Destination: &app.flags.dryRun,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "cancel the operation after this long (0 = no timeout)",
			Destination: &app.flags.timeout,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.toml",
			Sources:     cli.EnvVars(config.EnvConfigPath),
			Destination: &app.flags.configPath,
		},
		&cli.StringFlag{
			Name:        "search-tool",
			Usage:       "AUR helper used for search, install and remove",
			Destination: &app.flags.searchTool,
		},
		&cli.StringFlag{
			Name:        "db-tool",
			Usage:       "package database tool used for installed checks",
			Destination: &app.flags.dbTool,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "write logs to this file (the interface discards logs otherwise)",
			Destination: &app.flags.logFile,
		},
		&cli.BoolFlag{
			Name:        "password-stdin",
			Usage:       "read the sudo password from standard input",
			Destination: &app.flags.passwordStdin,
		},
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "automatically answer yes to all prompts",
			Destination: &app.flags.yes,
		},
	}
}

// initConfig validates flags, loads the configuration and builds the services.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.flags.json && app.flags.plain {
		return ctx, domain.NewExitError(domain.ExitUsageError, ErrConflictingFlags.Error(), ErrConflictingFlags)
	}

	if app.flags.format != "" {
		format, err := cliAdapter.ParseOutputFormat(app.flags.format)
		if err != nil {
			return ctx, domain.NewExitError(domain.ExitUsageError, err.Error(), err)
		}

		app.flags.json = format == cliAdapter.JSONFormat
		app.flags.plain = format == cliAdapter.PlainFormat
	}

	path := app.flags.configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return ctx, domain.NewExitError(domain.ExitConfigError, fmt.Sprintf("Failed to load configuration: %v", err), err)
	}

	app.applyFlagOverrides(cfg)
	app.cfg = cfg

	logger, err := app.openLogger()
	if err != nil {
		return ctx, domain.NewExitError(domain.ExitConfigError, fmt.Sprintf("Failed to open log file: %v", err), err)
	}

	app.wire(logger)
	app.console = console.NewWithWriter(app.stderr, app.flags.verbose, app.flags.json, app.flags.plain)
	app.output = cliAdapter.NewOutputAdapterWithWriter(app.stdout,
		cliAdapter.FormatFromFlags(app.flags.json, app.flags.plain), app.flags.quiet)

	if app.flags.timeout > 0 {
		ctx, app.cancel = context.WithTimeout(ctx, app.flags.timeout)
	}

	return ctx, nil
}

func (app *CLI) applyFlagOverrides(cfg *config.Config) {
	if app.flags.searchTool != "" {
		cfg.Tools.Search = app.flags.searchTool
	}

	if app.flags.dbTool != "" {
		cfg.Tools.Database = app.flags.dbTool
	}

	if app.flags.dryRun {
		cfg.Runner.DryRun = true
	}
}

func (app *CLI) openLogger() (*log.Logger, error) {
	if app.flags.logFile == "" {
		return logging.New(app.stderr, app.flags.verbose), nil
	}

	logger, closer, err := logging.OpenFile(app.flags.logFile, app.flags.verbose)
	if err != nil {
		return nil, err
	}

	app.closers = append(app.closers, closer)

	return logger, nil
}

// wire builds the runner and services around logger.
func (app *CLI) wire(logger *log.Logger) {
	app.logger = logger

	app.runner = platform.NewCommandRunner(logger, app.cfg.Runner.DryRun).
		WithChunkSize(app.cfg.Runner.ChunkSize)
	if app.spawner != nil {
		app.runner = app.runner.WithSpawner(app.spawner)
	}

	checker := yay.NewPacmanChecker(app.runner, app.cfg.Tools.Database)
	app.search = application.NewSearchService(app.runner, checker, app.cfg.Tools.Search, logger)
	app.packages = application.NewPackageService(app.runner, app.cfg.Tools, logger)
}

// shutdown releases what initConfig acquired.
func (app *CLI) shutdown(_ context.Context, _ *cli.Command) error {
	if app.cancel != nil {
		app.cancel()
	}

	for _, closer := range app.closers {
		_ = closer.Close()
	}

	app.closers = nil

	return nil
}

// defaultAction starts the interactive interface when no command is given.
func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() > 0 {
		return domain.NewExitError(domain.ExitUsageError,
			fmt.Sprintf("'%s' is not a command. Run 'pkgcenter --help' to see available commands.", cmd.Args().First()), nil)
	}

	return app.runTUI(ctx)
}

// fail turns an operation error into an ExitError with a friendly message.
func (app *CLI) fail(err error, pkg string) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	message := domain.FormatErrorMessage(err, pkg, app.flags.verbose)

	return domain.NewExitError(domain.ExitCodeFor(err), message, err)
}
