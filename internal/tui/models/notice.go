// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
)

// Notice reports the outcome of an operation until a key is pressed.
type Notice struct {
	styles  *styles.Styles
	dismiss key.Binding
	width   int
	ok      bool
	message string
	detail  string
}

// NewNotice creates a success or failure notice.
func NewNotice(styleConfig *styles.Styles, ok bool, message, detail string) *Notice {
	return &Notice{
		styles:  styleConfig,
		dismiss: key.NewBinding(key.WithKeys(KeyEnter, KeyEsc, " "), key.WithHelp("enter", "continue")),
		ok:      ok,
		message: message,
		detail:  detail,
	}
}

// Init implements tea.Model.
func (m *Notice) Init() tea.Cmd {
	return nil
}

// Update handles messages for the Notice model.
func (m *Notice) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.dismiss) {
			return m, func() tea.Msg { return NoticeDismissedMsg{} }
		}
	}

	return m, nil
}

// OK reports whether the notice is a success.
func (m *Notice) OK() bool {
	return m.ok
}

// Message returns the headline.
func (m *Notice) Message() string {
	return m.message
}

// View renders the notice screen.
func (m *Notice) View() string {
	status, style := "error", m.styles.ErrorText
	if m.ok {
		status, style = "success", m.styles.SuccessText
	}

	body := m.styles.StatusIcon(status) + " " + style.Bold(true).Render(m.message)
	if m.detail != "" {
		body += "\n\n" + m.styles.MutedText.Render(m.detail)
	}

	return strings.Join([]string{
		RenderHeader(m.styles, m.width, "Result", ""),
		m.styles.Card.Render(body),
		RenderFooter(m.styles, m.width, m.dismiss),
	}, "\n")
}
