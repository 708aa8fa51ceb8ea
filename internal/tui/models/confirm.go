// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
)

// ConfirmKeyMap defines key bindings for the confirm screen.
type ConfirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

// DefaultConfirmKeyMap returns the default key bindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes: key.NewBinding(key.WithKeys("y", KeyEnter), key.WithHelp("y/enter", "yes")),
		No:  key.NewBinding(key.WithKeys("n", KeyEsc), key.WithHelp("n/esc", "no")),
	}
}

// Confirm asks a yes/no question before a privileged operation.
type Confirm struct {
	styles   *styles.Styles
	keyMap   ConfirmKeyMap
	width    int
	question string
	detail   string
}

// NewConfirm creates a confirm screen for question.
func NewConfirm(styleConfig *styles.Styles, question, detail string) *Confirm {
	return &Confirm{
		styles:   styleConfig,
		keyMap:   DefaultConfirmKeyMap(),
		question: question,
		detail:   detail,
	}
}

// Init implements tea.Model.
func (m *Confirm) Init() tea.Cmd {
	return nil
}

// Update handles messages for the Confirm model.
func (m *Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Yes):
			return m, func() tea.Msg { return ConfirmResultMsg{Confirmed: true} }
		case key.Matches(msg, m.keyMap.No):
			return m, func() tea.Msg { return ConfirmResultMsg{Confirmed: false} }
		}
	}

	return m, nil
}

// View renders the confirm screen.
func (m *Confirm) View() string {
	body := m.styles.Title.Render(m.question)
	if m.detail != "" {
		body += "\n" + m.styles.MutedText.Render(m.detail)
	}

	return strings.Join([]string{
		RenderHeader(m.styles, m.width, "Confirm", ""),
		m.styles.Card.Render(body),
		RenderFooter(m.styles, m.width, m.keyMap.Yes, m.keyMap.No),
	}, "\n")
}
