// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
)

// helpWrapWidth is the glamour word-wrap column.
const helpWrapWidth = 76

// HelpMarkdown is the key reference shown by the help screen.
const HelpMarkdown = `# pkgcenter

Search the repositories and the AUR, then install or remove what you find.

## Search

| Key | Action |
|-----|--------|
| type, then enter | Run the search |
| tab or ↓ | Move to the results |
| esc | Clear the query |

## Results

| Key | Action |
|-----|--------|
| ↑/↓ or k/j | Move the cursor |
| i | Install the selected package |
| r | Remove the selected package |
| c | Remove orphaned packages |
| / | Filter the results (fuzzy) |
| esc | Clear the filter, then back to the query |
| ? | This help |
| q or ctrl+c | Quit |

## Notes

- ✓ marks packages the local database reports as installed.
- The sudo password is asked once and kept in memory until you quit.
- After an install or removal the search runs again so the marks stay current.
- Only one operation runs at a time. Press esc on the busy screen to cancel it.
`

// HelpKeyMap defines key bindings for the help screen.
type HelpKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
}

// DefaultHelpKeyMap returns the default key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Back: key.NewBinding(key.WithKeys(KeyEsc, "q", "?"), key.WithHelp("esc", "back")),
	}
}

// Help renders the key reference with glamour in a scrollable viewport.
type Help struct {
	styles   *styles.Styles
	width    int
	viewport viewport.Model
	keyMap   HelpKeyMap
}

// NewHelp creates the help screen. Rendering falls back to the raw markdown
// when no glamour renderer can be built.
func NewHelp(styleConfig *styles.Styles) *Help {
	viewPort := viewport.New(helpWrapWidth+4, 20)
	viewPort.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styleConfig.Primary)

	viewPort.SetContent(renderMarkdown(HelpMarkdown))

	return &Help{
		styles:   styleConfig,
		viewport: viewPort,
		keyMap:   DefaultHelpKeyMap(),
	}
}

func renderMarkdown(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(helpWrapWidth),
	)
	if err != nil {
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return out
}

// Init implements tea.Model.
func (m *Help) Init() tea.Cmd {
	return nil
}

// Update handles messages for the Help model.
func (m *Help) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = min(msg.Width, helpWrapWidth+4)
		m.viewport.Height = max(msg.Height-6, 5)

		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Back) {
			return m, func() tea.Msg { return HelpClosedMsg{} }
		}
	}

	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// View renders the help screen.
func (m *Help) View() string {
	return strings.Join([]string{
		RenderHeader(m.styles, m.width, "Help", ""),
		m.viewport.View(),
		RenderFooter(m.styles, m.width, m.keyMap.Up, m.keyMap.Down, m.keyMap.Back),
	}, "\n")
}
