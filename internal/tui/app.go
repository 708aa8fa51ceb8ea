// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui implements the interactive pkgcenter interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/pkgcenter/internal/console"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/tui/models"
	"github.com/janderssonse/pkgcenter/internal/tui/styles"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// GoodbyeMessage is shown when the interface exits.
const GoodbyeMessage = "Goodbye.\n"

// Searcher runs a package search.
type Searcher interface {
	Search(ctx context.Context, query string, yield domain.YieldFunc) ([]domain.PackageRecord, error)
}

// Operator runs privileged package operations.
type Operator interface {
	Authenticate(ctx context.Context, session *domain.Session) error
	Install(ctx context.Context, session *domain.Session, pkg string, yield domain.YieldFunc) error
	Remove(ctx context.Context, session *domain.Session, pkg string, yield domain.YieldFunc) error
	CleanOrphans(ctx context.Context, session *domain.Session, yield domain.YieldFunc) error
}

// Screen represents different TUI screens.
type Screen int

// Screens in the order a session usually visits them.
const (
	PasswordScreen Screen = iota
	SearchScreen
	ConfirmScreen
	ProgressScreen
	NoticeScreen
	HelpScreen
)

// authDoneMsg carries the outcome of the startup password check.
type authDoneMsg struct {
	err error
}

// searchDoneMsg carries the outcome of one search run.
type searchDoneMsg struct {
	run     int
	query   string
	records []domain.PackageRecord
	err     error
}

// operationDoneMsg carries the outcome of one privileged operation.
type operationDoneMsg struct {
	run int
	req models.OperationRequestedMsg
	err error
}

// progressTickMsg reports the output read by the current run.
type progressTickMsg struct {
	run   int
	bytes int64
}

// progressFeed turns yield calls from the worker into ticks for the UI.
// Only the worker sends and closes, so closing never races a send.
type progressFeed struct {
	run    int
	total  atomic.Int64
	signal chan struct{}
}

func newProgressFeed(run int) *progressFeed {
	return &progressFeed{run: run, signal: make(chan struct{}, 1)}
}

func (f *progressFeed) yield(n int) {
	f.total.Add(int64(n))

	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *progressFeed) close() {
	close(f.signal)
}

// listen waits for the next tick; it returns nil once the run is over.
func (f *progressFeed) listen() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-f.signal; !ok {
			return nil
		}

		return progressTickMsg{run: f.run, bytes: f.total.Load()}
	}
}

// App is the root model. It owns the session credential and runs at most
// one search or operation at a time, off the UI goroutine.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type App struct {
	ctx      context.Context
	searcher Searcher
	operator Operator
	styles   *styles.Styles
	session  *domain.Session

	width  int
	height int
	screen Screen

	password *models.PasswordPrompt
	search   *models.Search
	content  tea.Model // confirm, progress, notice or help

	pending *models.OperationRequestedMsg
	feed    *progressFeed
	running bool
	run     int
	cancel  context.CancelFunc
	refresh bool

	quitting bool
}

// NewApp creates the interface, starting on the password screen.
func NewApp(ctx context.Context, searcher Searcher, operator Operator) *App {
	styleConfig := styles.New()

	return &App{
		ctx:      ctx,
		searcher: searcher,
		operator: operator,
		styles:   styleConfig,
		screen:   PasswordScreen,
		password: models.NewPasswordPrompt(styleConfig),
		search:   models.NewSearch(styleConfig),
	}
}

// Launch runs the interface until the user quits.
func Launch(ctx context.Context, searcher Searcher, operator Operator) error {
	if !console.Interactive() {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	app := NewApp(ctx, searcher, operator)
	defer app.Close()

	program := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// Close cancels any running operation and forgets the credential.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}

	a.session.Clear()
	a.session = nil
}

// Init implements the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return a.password.Init()
}

// Update implements the tea.Model interface.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.resize(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case models.PasswordSubmittedMsg:
		return a, a.authenticate(msg.Password)

	case models.PasswordCancelledMsg:
		return a.quit()

	case authDoneMsg:
		return a.handleAuth(msg)

	case models.SearchRequestedMsg:
		return a, a.startSearch(msg.Query)

	case searchDoneMsg:
		return a.handleSearchDone(msg)

	case models.OperationRequestedMsg:
		return a.handleOperationRequest(msg)

	case models.ConfirmResultMsg:
		return a.handleConfirm(msg)

	case operationDoneMsg:
		return a.handleOperationDone(msg)

	case progressTickMsg:
		return a.handleProgress(msg)

	case models.NoticeDismissedMsg:
		return a.handleNoticeDismissed()

	case models.HelpRequestedMsg:
		a.show(HelpScreen, models.NewHelp(a.styles))

		return a, nil

	case models.HelpClosedMsg:
		a.screen = SearchScreen

		return a, nil
	}

	return a, a.forward(msg)
}

// View implements the tea.Model interface.
func (a *App) View() string {
	if a.quitting {
		return GoodbyeMessage
	}

	switch a.screen {
	case PasswordScreen:
		return a.password.View()
	case SearchScreen:
		return a.search.View()
	default:
		if a.content == nil {
			return a.search.View()
		}

		return a.content.View()
	}
}

// CurrentScreen returns the screen on display.
func (a *App) CurrentScreen() Screen {
	return a.screen
}

// Running reports whether a search or operation is in flight.
func (a *App) Running() bool {
	return a.running
}

// SearchModel returns the search screen.
func (a *App) SearchModel() *models.Search {
	return a.search
}

// Content returns the model of the confirm, progress, notice or help screen.
func (a *App) Content() tea.Model {
	return a.content
}

func (a *App) resize(msg tea.WindowSizeMsg) tea.Cmd {
	a.width = msg.Width
	a.height = msg.Height

	a.password.Update(msg)
	a.search.Update(msg)

	if a.content != nil {
		a.content.Update(msg)
	}

	return nil
}

// forward delivers msg to the model on display.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.screen {
	case PasswordScreen:
		_, cmd = a.password.Update(msg)
	case SearchScreen:
		_, cmd = a.search.Update(msg)
	default:
		if a.content != nil {
			_, cmd = a.content.Update(msg)
		}
	}

	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == models.KeyCtrlC {
		return a.quit()
	}

	if a.screen == ProgressScreen && msg.String() == models.KeyEsc {
		if a.cancel != nil {
			a.cancel()
		}

		return a, nil
	}

	return a, a.forward(msg)
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.Close()

	return a, tea.Quit
}

// show replaces the secondary screen and sizes it.
func (a *App) show(screen Screen, model tea.Model) {
	a.screen = screen
	a.content = model

	if a.width > 0 {
		model.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
}

// authenticate checks the typed password with sudo before caching it.
func (a *App) authenticate(password string) tea.Cmd {
	a.session.Clear()
	a.session = domain.NewSession(password)

	ctx, operator, session := a.ctx, a.operator, a.session

	return func() tea.Msg {
		return authDoneMsg{err: operator.Authenticate(ctx, session)}
	}
}

func (a *App) handleAuth(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.session.Clear()
		a.session = nil

		message := "Invalid password. Please try again."
		if !errors.Is(msg.err, domain.ErrAuthenticationFailed) {
			message = domain.FormatErrorMessage(msg.err, "", false)
		}

		a.password.SetError(message)

		return a, nil
	}

	a.screen = SearchScreen

	return a, a.search.Init()
}

// begin marks a run as started and shows the busy screen.
func (a *App) begin(title string) (context.Context, *progressFeed, tea.Cmd) {
	a.running = true
	a.run++

	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel

	progress := models.NewProgress(a.styles, title)
	a.show(ProgressScreen, progress)

	feed := newProgressFeed(a.run)
	a.feed = feed

	return ctx, feed, tea.Batch(progress.Init(), feed.listen())
}

// finish reports whether msg belongs to the current run and ends it.
func (a *App) finish(run int) bool {
	if run != a.run || !a.running {
		return false
	}

	a.running = false

	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	return true
}

func (a *App) startSearch(query string) tea.Cmd {
	if a.running {
		return nil
	}

	ctx, feed, start := a.begin(fmt.Sprintf("Searching for %q", query))
	searcher := a.searcher

	return tea.Batch(start, func() tea.Msg {
		defer feed.close()

		records, err := searcher.Search(ctx, query, feed.yield)

		return searchDoneMsg{run: feed.run, query: query, records: records, err: err}
	})
}

func (a *App) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if !a.finish(msg.run) {
		return a, nil
	}

	a.search.SetResults(msg.query, msg.records, msg.err)
	a.screen = SearchScreen

	return a, nil
}

func (a *App) handleOperationRequest(msg models.OperationRequestedMsg) (tea.Model, tea.Cmd) {
	if a.running {
		return a, nil
	}

	a.pending = &msg

	question := fmt.Sprintf("%s %s?", msg.Op, msg.Package.ID())
	if msg.Op == models.OpClean {
		question = "Remove all orphaned packages?"
	}

	a.show(ConfirmScreen, models.NewConfirm(a.styles, question, "This runs the package tool with sudo."))

	return a, nil
}

func (a *App) handleConfirm(msg models.ConfirmResultMsg) (tea.Model, tea.Cmd) {
	req := a.pending
	a.pending = nil

	if !msg.Confirmed || req == nil || a.running {
		a.screen = SearchScreen

		return a, nil
	}

	return a, a.startOperation(*req)
}

func (a *App) startOperation(req models.OperationRequestedMsg) tea.Cmd {
	title := fmt.Sprintf("%s %s", req.Op, req.Package.Name)
	if req.Op == models.OpClean {
		title = req.Op.String()
	}

	ctx, feed, start := a.begin(title)
	operator, session := a.operator, a.session

	return tea.Batch(start, func() tea.Msg {
		defer feed.close()

		var err error

		switch req.Op {
		case models.OpInstall:
			err = operator.Install(ctx, session, req.Package.Name, feed.yield)
		case models.OpRemove:
			err = operator.Remove(ctx, session, req.Package.Name, feed.yield)
		case models.OpClean:
			err = operator.CleanOrphans(ctx, session, feed.yield)
		}

		return operationDoneMsg{run: feed.run, req: req, err: err}
	})
}

func (a *App) handleOperationDone(msg operationDoneMsg) (tea.Model, tea.Cmd) {
	if !a.finish(msg.run) {
		return a, nil
	}

	target := msg.req.Package.Name
	if msg.req.Op == models.OpClean {
		target = "orphaned packages"
	}

	if msg.err != nil {
		a.refresh = false
		a.show(NoticeScreen, models.NewNotice(a.styles, false,
			fmt.Sprintf("%s %s failed", msg.req.Op, target),
			domain.FormatErrorMessage(msg.err, msg.req.Package.Name, false)))

		return a, nil
	}

	a.refresh = true
	a.show(NoticeScreen, models.NewNotice(a.styles, true,
		fmt.Sprintf("%s %s: done", msg.req.Op, target), ""))

	return a, nil
}

// handleNoticeDismissed returns to the search and, after a successful
// operation, runs the last search again so installed marks are current.
func (a *App) handleNoticeDismissed() (tea.Model, tea.Cmd) {
	a.screen = SearchScreen

	if !a.refresh || a.search.LastQuery() == "" {
		return a, nil
	}

	a.refresh = false

	return a, a.startSearch(a.search.LastQuery())
}

func (a *App) handleProgress(msg progressTickMsg) (tea.Model, tea.Cmd) {
	if msg.run != a.run || !a.running {
		return a, nil
	}

	if progress, ok := a.content.(*models.Progress); ok {
		progress.Update(models.ProgressMsg{Bytes: msg.bytes})
	}

	return a, a.feed.listen()
}
