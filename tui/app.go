package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/domain"
	"github.com/CrestNiraj12/terminalreddit/infra/config"
	"github.com/CrestNiraj12/terminalreddit/infra/logging"
	"github.com/CrestNiraj12/terminalreddit/tui/common"
	"github.com/CrestNiraj12/terminalreddit/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Source            app.FeedSource
	Thumbnails        app.ThumbnailLoader
	Logger            *log.Logger
	Sort              domain.SortMode
	Limit             int
	LoadMoreThreshold int
	Title             string
	CommentsURL       func(domain.Post) string
	StatePath         string // UI state file; empty disables persistence
}

// App is the root Bubble Tea model.
type App struct {
	deps   Deps
	feed   feed.Model
	keys   common.KeyMap
	logger *log.Logger
	status string // Transient status message (e.g. "Could not save preferences")
}

type prefsSavedMsg struct {
	Err error
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	ctrl := app.NewFeedController(deps.Source, deps.Sort, deps.Limit)
	return App{
		deps: deps,
		feed: feed.New(feed.Deps{
			Controller:        ctrl,
			Thumbnails:        deps.Thumbnails,
			Logger:            logger.WithPrefix("feed"),
			Title:             deps.Title,
			CommentsURL:       deps.CommentsURL,
			LoadMoreThreshold: deps.LoadMoreThreshold,
		}),
		keys:   common.DefaultKeyMap(),
		logger: logger,
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles global keys and routes everything else to the feed.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) ||
			(key.Matches(msg, a.keys.Quit) && !a.feed.IsEditing()) {
			a.feed.Close()
			return a, tea.Quit
		}
		a.status = ""

	case feed.SortChangedMsg:
		return a, a.savePrefs(msg.Sort)

	case prefsSavedMsg:
		if msg.Err != nil {
			a.logger.Warn("saving ui state", "path", a.deps.StatePath, "err", msg.Err)
			a.status = "Could not save preferences: " + msg.Err.Error()
		}
		return a, nil
	}

	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

func (a App) savePrefs(sort domain.SortMode) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{Err: config.SaveUIState(path, config.UIState{Sort: string(sort)})}
	}
}

// View renders the feed plus any transient status.
func (a App) View() string {
	s := a.feed.View()
	if a.status != "" {
		s += "\n" + common.ErrorStyle.Render(" "+a.status)
	}
	return s
}
