// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
)

// ProgressMsg reports how many bytes of tool output were read so far.
type ProgressMsg struct {
	Bytes int64
}

// Progress shows a spinner while an operation runs.
type Progress struct {
	styles  *styles.Styles
	spinner spinner.Model
	cancel  key.Binding
	width   int
	title   string
	bytes   int64
}

// NewProgress creates a busy screen titled title.
func NewProgress(styleConfig *styles.Styles, title string) *Progress {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleConfig.PrimaryText

	return &Progress{
		styles:  styleConfig,
		spinner: spin,
		cancel:  key.NewBinding(key.WithKeys(KeyEsc), key.WithHelp("esc", "cancel")),
		title:   title,
	}
}

// Init starts the spinner.
func (m *Progress) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the Progress model.
func (m *Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil
	case ProgressMsg:
		m.bytes = msg.Bytes

		return m, nil
	}

	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

// Bytes returns the output read so far.
func (m *Progress) Bytes() int64 {
	return m.bytes
}

// View renders the busy screen.
func (m *Progress) View() string {
	line := fmt.Sprintf("%s %s", m.spinner.View(), m.title)

	detail := "waiting for output"
	if m.bytes > 0 {
		detail = humanize.Bytes(uint64(m.bytes)) + " of output read"
	}

	return strings.Join([]string{
		RenderHeader(m.styles, m.width, "Working", ""),
		m.styles.Card.Render(line + "\n" + m.styles.MutedText.Render(detail)),
		RenderFooter(m.styles, m.width, m.cancel),
	}, "\n")
}
