// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Layout constants for the search screen.
const (
	nameColumnWidth    = 28
	versionColumnWidth = 16
	chromeHeight       = 10 // header, input, status line and footer
	minListHeight      = 3
	defaultListWidth   = 80
)

// SearchKeyMap defines key bindings for the search screen.
type SearchKeyMap struct {
	Search  key.Binding
	Focus   key.Binding
	Up      key.Binding
	Down    key.Binding
	Install key.Binding
	Remove  key.Binding
	Clean   key.Binding
	Filter  key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultSearchKeyMap returns the default key bindings.
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Search:  key.NewBinding(key.WithKeys(KeyEnter), key.WithHelp("enter", "search")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "results")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Install: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install")),
		Remove:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remove")),
		Clean:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clean")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:    key.NewBinding(key.WithKeys(KeyEsc), key.WithHelp("esc", "clear/back")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// searchFocus says which part of the screen receives keys.
type searchFocus int

const (
	focusQuery searchFocus = iota
	focusResults
	focusFilter
)

// records adapts a result list to fuzzy.Source.
type records []domain.PackageRecord

func (r records) String(i int) string { return r[i].ID() + " " + r[i].Description }
func (r records) Len() int            { return len(r) }

// Search is the main screen: a query field over the result list.
type Search struct {
	styles   *styles.Styles
	keyMap   SearchKeyMap
	width    int
	height   int
	query    textinput.Model
	filter   textinput.Model
	viewport viewport.Model
	focus    searchFocus
	title    cases.Caser

	lastQuery string
	results   []domain.PackageRecord
	visible   []int // indexes into results, in display order
	cursor    int
	err       error
	searched  bool
}

// NewSearch creates the search screen with the query field focused.
func NewSearch(styleConfig *styles.Styles) *Search {
	query := textinput.New()
	query.Placeholder = "search packages"
	query.Prompt = "› "
	query.CharLimit = 200
	query.Focus()

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter results"

	return &Search{
		styles:   styleConfig,
		keyMap:   DefaultSearchKeyMap(),
		query:    query,
		filter:   filter,
		viewport: viewport.New(defaultListWidth, minListHeight),
		title:    cases.Title(language.Und),
	}
}

// Init starts the cursor blink.
func (m *Search) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the Search model.
func (m *Search) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil
	case tea.KeyMsg:
		switch m.focus {
		case focusQuery:
			return m.updateQuery(msg)
		case focusFilter:
			return m.updateFilter(msg)
		default:
			return m.updateResults(msg)
		}
	}

	var cmd tea.Cmd

	switch m.focus {
	case focusQuery:
		m.query, cmd = m.query.Update(msg)
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	}

	return m, cmd
}

func (m *Search) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Search):
		query := m.query.Value()

		return m, func() tea.Msg { return SearchRequestedMsg{Query: query} }
	case key.Matches(msg, m.keyMap.Focus), msg.String() == "down":
		if len(m.visible) > 0 {
			m.focusResults()
		}

		return m, nil
	case key.Matches(msg, m.keyMap.Back):
		m.query.Reset()

		return m, nil
	}

	var cmd tea.Cmd

	m.query, cmd = m.query.Update(msg)

	return m, cmd
}

func (m *Search) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.filter.Reset()
		m.applyFilter()
		m.focusResults()

		return m, nil
	case KeyEnter:
		m.focusResults()

		return m, nil
	}

	var cmd tea.Cmd

	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()

	return m, cmd
}

func (m *Search) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keyMap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keyMap.Install):
		return m, m.request(OpInstall)
	case key.Matches(msg, m.keyMap.Remove):
		return m, m.request(OpRemove)
	case key.Matches(msg, m.keyMap.Clean):
		return m, func() tea.Msg { return OperationRequestedMsg{Op: OpClean} }
	case key.Matches(msg, m.keyMap.Filter):
		m.focus = focusFilter
		m.filter.Focus()

		return m, textinput.Blink
	case key.Matches(msg, m.keyMap.Focus):
		m.focusQuery()

		return m, textinput.Blink
	case key.Matches(msg, m.keyMap.Back):
		if m.filter.Value() != "" {
			m.filter.Reset()
			m.applyFilter()

			return m, nil
		}

		m.focusQuery()

		return m, textinput.Blink
	case key.Matches(msg, m.keyMap.Help):
		return m, func() tea.Msg { return HelpRequestedMsg{} }
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// request asks for an operation on the selected package, if any.
func (m *Search) request(op Operation) tea.Cmd {
	pkg, ok := m.Selected()
	if !ok {
		return nil
	}

	return func() tea.Msg { return OperationRequestedMsg{Op: op, Package: pkg} }
}

func (m *Search) focusQuery() {
	m.focus = focusQuery
	m.filter.Blur()
	m.query.Focus()
}

func (m *Search) focusResults() {
	m.focus = focusResults
	m.query.Blur()
	m.filter.Blur()
	m.render()
}

// SetResults replaces the list with the outcome of a search. Repeating the
// same query keeps the cursor where it was.
func (m *Search) SetResults(query string, results []domain.PackageRecord, err error) {
	if query != m.lastQuery {
		m.cursor = 0
	}

	m.lastQuery = query
	m.results = results
	m.err = err
	m.searched = true
	m.filter.Reset()
	m.applyFilter()

	if len(m.visible) > 0 && err == nil {
		m.focusResults()
	} else {
		m.focusQuery()
	}
}

// LastQuery returns the query of the results on screen.
func (m *Search) LastQuery() string {
	return m.lastQuery
}

// Selected returns the package under the cursor.
func (m *Search) Selected() (domain.PackageRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.PackageRecord{}, false
	}

	return m.results[m.visible[m.cursor]], true
}

// Visible returns the packages shown, in display order.
func (m *Search) Visible() []domain.PackageRecord {
	out := make([]domain.PackageRecord, 0, len(m.visible))
	for _, i := range m.visible {
		out = append(out, m.results[i])
	}

	return out
}

// applyFilter recomputes the visible rows from the filter text. Without a
// filter the helper's order is kept; with one, best matches come first.
func (m *Search) applyFilter() {
	pattern := strings.TrimSpace(m.filter.Value())

	m.visible = m.visible[:0]

	if pattern == "" {
		for i := range m.results {
			m.visible = append(m.visible, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(pattern, records(m.results)) {
			m.visible = append(m.visible, match.Index)
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}

	m.render()
}

func (m *Search) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}

	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.render()
}

func (m *Search) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, minListHeight)
	m.query.Width = max(width-8, 10)
	m.render()
}

// render lays out the rows and keeps the cursor row in view.
func (m *Search) render() {
	width := m.viewport.Width
	if width <= 0 {
		width = defaultListWidth
	}

	lines := make([]string, 0, len(m.visible)+4)
	cursorLine := 0
	repo := ""

	for row, index := range m.visible {
		pkg := m.results[index]

		if pkg.Repository != repo {
			repo = pkg.Repository
			lines = append(lines, m.styles.RepoHeader.Render(m.title.String(repo)))
		}

		if row == m.cursor {
			cursorLine = len(lines)
		}

		lines = append(lines, m.renderRow(pkg, row == m.cursor && m.focus != focusQuery, width))
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))

	switch {
	case cursorLine < m.viewport.YOffset:
		m.viewport.SetYOffset(max(cursorLine-1, 0))
	case cursorLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

func (m *Search) renderRow(pkg domain.PackageRecord, selected bool, width int) string {
	status := "available"
	if pkg.Installed {
		status = "installed"
	}

	name := runewidth.FillRight(runewidth.Truncate(pkg.Name, nameColumnWidth, "…"), nameColumnWidth)
	version := runewidth.FillRight(runewidth.Truncate(pkg.Version, versionColumnWidth, "…"), versionColumnWidth)
	line := fmt.Sprintf("  %s %s %s %s", m.styles.StatusIcon(status), name, version, pkg.Description)

	line = ansi.Truncate(line, width, "…")
	if selected {
		return m.styles.Selected.Render(ansi.Strip(line))
	}

	return line
}

// Status returns the line under the results.
func (m *Search) Status() string {
	switch {
	case m.err != nil:
		return domain.FormatErrorMessage(m.err, "", false)
	case !m.searched:
		return "Type a query and press enter"
	}

	summary := domain.Summarize(m.results)
	status := fmt.Sprintf("%d packages found (%d installed)", summary.Total, summary.Installed)

	if m.filter.Value() != "" {
		status += fmt.Sprintf(", %d shown", len(m.visible))
	}

	return status
}

// View renders the search screen.
func (m *Search) View() string {
	parts := []string{
		RenderHeader(m.styles, m.width, "Search", m.lastQuery),
		m.styles.Input.Render(m.query.View()),
	}

	if m.focus == focusFilter || m.filter.Value() != "" {
		parts = append(parts, m.filter.View())
	}

	parts = append(parts, m.viewport.View())

	statusStyle := m.styles.MutedText
	if m.err != nil {
		statusStyle = m.styles.ErrorText
	}

	parts = append(parts, statusStyle.Render(m.Status()))

	if m.focus == focusQuery {
		parts = append(parts, RenderFooter(m.styles, m.width, m.keyMap.Search, m.keyMap.Focus, m.keyMap.Back))
	} else {
		parts = append(parts, RenderFooter(m.styles, m.width,
			m.keyMap.Install, m.keyMap.Remove, m.keyMap.Clean, m.keyMap.Filter, m.keyMap.Help, m.keyMap.Quit))
	}

	return strings.Join(parts, "\n")
}
