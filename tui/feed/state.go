package feed

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/domain"
	"github.com/CrestNiraj12/terminalreddit/infra/logging"
	"github.com/CrestNiraj12/terminalreddit/tui/common"
)

const (
	// Each card is 3 content lines plus a rounded border, followed by a gap.
	cardContentLines = 3
	cardHeight       = cardContentLines + 2
	cardGap          = 1
	cardStride       = cardHeight + cardGap

	defaultLoadMoreThreshold = 6

	thumbCols          = 16
	thumbRows          = 8
	thumbPanelMinWidth = 96
)

// FeedLoadedMsg carries the outcome of a controller fetch back to the update loop.
type FeedLoadedMsg struct {
	Result app.FetchResult
}

// ThumbnailLoadedMsg is sent when a thumbnail preview has been rendered.
type ThumbnailLoadedMsg struct {
	URL     string
	Preview string
	Err     error
}

// SortChangedMsg is emitted after the user switches tabs so the root model
// can persist the choice.
type SortChangedMsg struct {
	Sort domain.SortMode
}

// Deps holds what the feed view needs. Plain struct, not a DI container.
type Deps struct {
	Controller        *app.FeedController
	Thumbnails        app.ThumbnailLoader
	Logger            *log.Logger
	Title             string
	CommentsURL       func(domain.Post) string
	LoadMoreThreshold int // Lines from the bottom that trigger the next page
}

// --- Model ---

type modelServices struct {
	ctrl        *app.FeedController
	thumbLoader app.ThumbnailLoader
	logger      *log.Logger
	commentsURL func(domain.Post) string
	ctx         context.Context
	cancel      context.CancelFunc
}

type uiState struct {
	keys              common.KeyMap
	spinner           spinner.Model
	title             string
	width             int // Terminal width
	height            int // Terminal height
	cursor            int // Index into the filtered view
	startIndex        int // First visible card
	loadMoreThreshold int
	pagingNotice      string
	showAllHints      bool
}

type searchState struct {
	searching bool
	input     textinput.Model
}

type thumbState struct {
	showThumbs   bool
	thumbs       map[string]string
	thumbLoading map[string]bool
	thumbFailed  map[string]bool
}

// Model holds the state for the feed view.
type Model struct {
	modelServices
	uiState
	searchState
	thumbState
}

// New creates a feed model around an existing controller.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4500"))

	in := textinput.New()
	in.Prompt = "/ "
	in.PromptStyle = common.SearchPromptStyle
	in.Placeholder = "search titles"
	in.CharLimit = 120

	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	threshold := deps.LoadMoreThreshold
	if threshold <= 0 {
		threshold = defaultLoadMoreThreshold
	}
	commentsURL := deps.CommentsURL
	if commentsURL == nil {
		commentsURL = func(domain.Post) string { return "" }
	}
	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		modelServices: modelServices{
			ctrl:        deps.Controller,
			thumbLoader: deps.Thumbnails,
			logger:      logger,
			commentsURL: commentsURL,
			ctx:         ctx,
			cancel:      cancel,
		},
		uiState: uiState{
			keys:              common.DefaultKeyMap(),
			spinner:           s,
			title:             deps.Title,
			loadMoreThreshold: threshold,
		},
		searchState: searchState{
			input: in,
		},
		thumbState: thumbState{
			showThumbs:   deps.Thumbnails != nil,
			thumbs:       make(map[string]string),
			thumbLoading: make(map[string]bool),
			thumbFailed:  make(map[string]bool),
		},
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCmd(m.ctrl.LoadInitial()),
		m.spinner.Tick,
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Close tears the view down. In-flight fetches are cancelled and any result
// that still arrives is dropped by the controller.
func (m Model) Close() {
	m.cancel()
	m.ctrl.Close()
}

// IsEditing reports whether keystrokes are going to the search bar.
func (m Model) IsEditing() bool {
	return m.searching
}
