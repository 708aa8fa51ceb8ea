// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
)

// PasswordKeyMap defines key bindings for the password screen.
type PasswordKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultPasswordKeyMap returns the default key bindings.
func DefaultPasswordKeyMap() PasswordKeyMap {
	return PasswordKeyMap{
		Submit: key.NewBinding(key.WithKeys(KeyEnter), key.WithHelp("enter", "confirm")),
		Cancel: key.NewBinding(key.WithKeys(KeyEsc, KeyCtrlC), key.WithHelp("esc", "quit")),
	}
}

// PasswordPrompt asks once for the sudo password at startup. The typed text
// is never rendered; the app checks it and reports back with SetError.
type PasswordPrompt struct {
	styles     *styles.Styles
	width      int
	input      textinput.Model
	keyMap     PasswordKeyMap
	error      string
	validating bool
}

// NewPasswordPrompt creates the password screen.
func NewPasswordPrompt(styleConfig *styles.Styles) *PasswordPrompt {
	input := textinput.New()
	input.Placeholder = "sudo password"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '●'
	input.CharLimit = 256
	input.Width = 30
	input.Focus()

	return &PasswordPrompt{
		styles: styleConfig,
		input:  input,
		keyMap: DefaultPasswordKeyMap(),
	}
}

// Init starts the cursor blink.
func (m *PasswordPrompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the PasswordPrompt model.
func (m *PasswordPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Cancel):
			m.input.Reset()

			return m, func() tea.Msg { return PasswordCancelledMsg{} }

		case key.Matches(msg, m.keyMap.Submit):
			return m.submit()
		}

		if m.validating {
			return m, nil
		}

		m.error = ""
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *PasswordPrompt) submit() (tea.Model, tea.Cmd) {
	if m.validating {
		return m, nil
	}

	password := m.input.Value()
	if password == "" {
		m.error = "Password cannot be empty"

		return m, nil
	}

	m.validating = true
	m.error = ""
	m.input.Reset()

	return m, func() tea.Msg { return PasswordSubmittedMsg{Password: password} }
}

// SetError shows why the last password was rejected and accepts input again.
func (m *PasswordPrompt) SetError(message string) {
	m.validating = false
	m.error = message
	m.input.Reset()
}

// Validating reports whether a submitted password is being checked.
func (m *PasswordPrompt) Validating() bool {
	return m.validating
}

// View renders the password prompt screen.
func (m *PasswordPrompt) View() string {
	var body strings.Builder

	body.WriteString(m.styles.PrimaryText.Render("Installing and removing packages requires administrator privileges."))
	body.WriteString("\n\n")
	body.WriteString(m.styles.Title.Render("Password:"))
	body.WriteString("\n")
	body.WriteString(m.styles.Input.Render(m.input.View()))
	body.WriteString("\n")

	switch {
	case m.validating:
		body.WriteString("\n" + m.styles.WarningText.Render("Checking password..."))
	case m.error != "":
		body.WriteString("\n" + m.styles.ErrorText.Bold(true).Render("✗ "+m.error))
	}

	body.WriteString("\n\n")
	body.WriteString(m.styles.SuccessText.Render("Your password is kept in memory for this session only."))

	return strings.Join([]string{
		RenderHeader(m.styles, m.width, "Authentication", "Required"),
		m.styles.Card.Render(body.String()),
		RenderFooter(m.styles, m.width, m.keyMap.Submit, m.keyMap.Cancel),
	}, "\n")
}
