package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/chm-go/internal/client"
	"github.com/dm/chm-go/internal/model"
	"github.com/dm/chm-go/internal/report"
)

// Options configures an App.
type Options struct {
	// Token starts the first load cycle on Init. Nil waits for a TokenMsg.
	Token *model.HealthToken
	// YarnAppsCount is shown as-is in the summary cards.
	YarnAppsCount int
	// RefreshInterval re-sets the current token periodically. Zero disables it.
	RefreshInterval time.Duration
	// DiscardStale drops successful results from superseded load cycles.
	DiscardStale bool
}

// App is the root Bubble Tea model for chm.
type App struct {
	svc             client.HealthCheckService
	sink            *report.Sink
	summary         *Summary
	table           NodeTable
	spinner         spinner.Model
	spinning        bool // a spinner tick loop is running
	initialToken    *model.HealthToken
	refreshInterval time.Duration

	lastUpdated time.Time

	// Layout
	width, height int

	// UI state
	showHelp bool
}

// NewApp creates an App fetching from svc. sink may be nil, in which case
// fetch failures are dropped and no toast is shown.
func NewApp(svc client.HealthCheckService, sink *report.Sink, opts Options) *App {
	var reporter report.ErrorReporter
	if sink != nil {
		reporter = sink
	}
	sum := NewSummary(svc, reporter, WithDiscardStale(opts.DiscardStale))
	sum.SetYarnAppsCount(opts.YarnAppsCount)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleCyan

	return &App{
		svc:             svc,
		sink:            sink,
		summary:         sum,
		table:           NewNodeTable(),
		spinner:         sp,
		initialToken:    opts.Token,
		refreshInterval: opts.RefreshInterval,
	}
}

// Summary returns the snapshot coordinator backing the console.
func (app *App) Summary() *Summary { return app.summary }

// Init implements tea.Model. Starts the first load cycle when a token was given.
func (app *App) Init() tea.Cmd {
	return tea.Batch(app.setToken(app.initialToken), tickCmd(app.refreshInterval))
}

// Update implements tea.Model. It is the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case TokenMsg:
		return app, app.setToken(msg.Token)

	case YarnAppsCountMsg:
		app.summary.SetYarnAppsCount(msg.Count)

	case FsStateMsg:
		app.summary.Update(msg)
		app.table.SetData(app.summary.Nodes())
		app.lastUpdated = time.Now()

	case MemoryStateMsg, HdfsUsageStateMsg:
		app.summary.Update(msg)
		app.lastUpdated = time.Now()

	case FetchFailedMsg:
		app.summary.Update(msg)
		app.table.SetData(app.summary.Nodes())

	case spinner.TickMsg:
		if !app.summary.IsLoading() {
			app.spinning = false
			return app, nil
		}
		var cmd tea.Cmd
		app.spinner, cmd = app.spinner.Update(msg)
		return app, cmd

	case TickMsg:
		return app, tea.Batch(app.reload(), tickCmd(app.refreshInterval))

	case tea.KeyMsg:
		if app.table.Searching() {
			var cmd tea.Cmd
			app.table, cmd = app.table.Update(msg)
			return app, cmd
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return app, app.reload()
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		default:
			var cmd tea.Cmd
			app.table, cmd = app.table.Update(msg)
			return app, cmd
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	parts := []string{
		renderHeader(app),
		app.summary.View(width),
		app.table.View(width),
		renderFooter(app),
	}
	return strings.Join(parts, "\n")
}

// setToken starts a load cycle for tok and the spinner if it is idle.
func (app *App) setToken(tok *model.HealthToken) tea.Cmd {
	fetches := app.summary.SetToken(tok)
	if fetches == nil {
		return nil
	}
	app.table.SetData(nil)
	if app.spinning {
		return fetches
	}
	app.spinning = true
	return tea.Batch(fetches, app.spinner.Tick)
}

// reload re-sets the current token. In-flight fetches are left running.
func (app *App) reload() tea.Cmd {
	return app.setToken(app.summary.Token())
}

// tickCmd schedules the next reload after d. Zero disables auto-refresh.
func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
