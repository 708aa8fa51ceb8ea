// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/mattn/go-runewidth"
)

var (
	// ErrUnsupportedFormat is returned when an unsupported output format is requested.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Status labels used in tables and plain output.
const (
	StatusInstalled = "installed"
	StatusAvailable = "available"
)

// descriptionWidth bounds the description column of the text table.
const descriptionWidth = 60

// OutputAdapter implements domain.OutputPort for CLI output.
type OutputAdapter struct {
	writer io.Writer
	format OutputFormat
	quiet  bool
}

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs a human-readable table.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
	// PlainFormat outputs one record per line for scripts.
	PlainFormat
)

// NewOutputAdapter creates a new output adapter with the specified configuration.
func NewOutputAdapter(format OutputFormat, quiet bool) *OutputAdapter {
	return NewOutputAdapterWithWriter(os.Stdout, format, quiet)
}

// NewOutputAdapterWithWriter creates a new output adapter with a custom writer for testing.
func NewOutputAdapterWithWriter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Search outputs search results in the configured format.
// Results are primary output and are written even in quiet mode.
func (o *OutputAdapter) Search(result domain.SearchResult) error {
	switch o.format {
	case JSONFormat:
		return o.outputJSON(result)
	case PlainFormat:
		for _, pkg := range result.Packages {
			_, _ = fmt.Fprintf(o.writer, "%s %s %s\n", pkg.ID(), pkg.Version, statusLabel(pkg))
		}

		return nil
	}

	if len(result.Packages) == 0 {
		if !o.quiet {
			_, _ = fmt.Fprintf(o.writer, "No packages found for %q\n", result.Query)
		}

		return nil
	}

	rows := make([][]string, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		rows = append(rows, []string{
			pkg.Repository,
			pkg.Name,
			pkg.Version,
			statusLabel(pkg),
			runewidth.Truncate(pkg.Description, descriptionWidth, "…"),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("REPO", "NAME", "VERSION", "STATUS", "DESCRIPTION").
		Rows(rows...)

	_, _ = fmt.Fprintln(o.writer, tbl.Render())

	if !o.quiet {
		_, _ = fmt.Fprintf(o.writer, "%d packages found (%d installed)\n", result.Summary.Total, result.Summary.Installed)
	}

	return nil
}

// Success outputs a success message.
func (o *OutputAdapter) Success(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"status": "success", "message": message})
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// Error outputs an error message.
func (o *OutputAdapter) Error(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"status": "error", "error": message})
	}

	_, _ = fmt.Fprintf(o.writer, "Error: %s\n", message)

	return nil
}

// Info outputs an informational message.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet || o.format == JSONFormat {
		return nil
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// IsQuiet returns true if output should be suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

// outputJSON outputs data as JSON.
func (o *OutputAdapter) outputJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

func statusLabel(pkg domain.PackageRecord) string {
	if pkg.Installed {
		return StatusInstalled
	}

	return StatusAvailable
}

// ParseOutputFormat parses a string into an OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "", "text", "table":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	case "plain":
		return PlainFormat, nil
	default:
		return TextFormat, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// FormatFromFlags picks the output format for the --json and --plain flags.
// JSON wins over plain.
func FormatFromFlags(jsonFlag, plainFlag bool) OutputFormat {
	switch {
	case jsonFlag:
		return JSONFormat
	case plainFlag:
		return PlainFormat
	default:
		return TextFormat
	}
}
