// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/pkgcenter/internal/console"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"golang.org/x/term"
)

// Prompter asks the user for a password and for confirmation.
type Prompter interface {
	Password(title string) (string, error)
	Confirm(title, description string) (bool, error)
}

func getTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))
}

// huhPrompter shows huh forms on the terminal.
type huhPrompter struct{}

func (huhPrompter) Password(title string) (string, error) {
	var secret string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(getTitleStyle().Render(title)).
				Description("Used for sudo during this session only").
				EchoMode(huh.EchoModePassword).
				Value(&secret),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}

	return secret, nil
}

func (huhPrompter) Confirm(title, description string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

// readPassword obtains the sudo password from --password-stdin or a prompt.
// The password is never echoed or logged.
func (app *CLI) readPassword() (string, error) {
	if app.flags.passwordStdin {
		return readSecretLine(app.stdin)
	}

	if !app.isTTY() {
		return "", domain.NewExitError(domain.ExitUsageError,
			"A sudo password is required: use --password-stdin when not on a terminal", ErrPasswordRequired)
	}

	return app.prompter.Password("sudo password")
}

// readSecretLine reads one line, without echo when r is a terminal.
func readSecretLine(r io.Reader) (string, error) {
	if file, ok := r.(*os.File); ok && console.IsTTY(file.Fd()) {
		secret, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}

		return string(secret), nil
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read password: %w", ErrPasswordRequired)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks before a privileged operation unless --yes was given.
func (app *CLI) confirm(title, description string) error {
	if app.flags.yes {
		return nil
	}

	if !app.isTTY() {
		return domain.NewExitError(domain.ExitUsageError,
			"Confirmation required: pass --yes when not on a terminal", ErrNotConfirmed)
	}

	ok, err := app.prompter.Confirm(title, description)
	if err != nil {
		return domain.NewExitError(domain.ExitInterruptError, "Prompt cancelled", err)
	}

	if !ok {
		return domain.NewExitError(domain.ExitSuccess, "Cancelled", ErrNotConfirmed)
	}

	return nil
}
