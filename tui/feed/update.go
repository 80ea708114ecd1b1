package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FeedLoadedMsg:
		return m.handleFeedLoaded(msg)

	case ThumbnailLoadedMsg:
		delete(m.thumbLoading, msg.URL)
		if msg.Err != nil {
			m.thumbFailed[msg.URL] = true
			return m, nil
		}
		m.thumbs[msg.URL] = msg.Preview
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKeyMsg(msg)
	}

	if m.searching {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFeedLoaded(msg FeedLoadedMsg) (Model, tea.Cmd) {
	res := msg.Result
	if !m.ctrl.Apply(res) {
		m.logger.Debug("dropping stale fetch result", "seq", res.Seq, "kind", res.Kind)
		return m, nil
	}
	if res.Err != nil {
		m.logger.Error("fetch failed", "kind", res.Kind, "err", res.Err)
	} else {
		m.logger.Info("fetched posts",
			"kind", res.Kind,
			"count", len(res.Page.Posts),
			"next", res.Page.NextToken,
		)
	}
	m.pagingNotice = ""
	m.clampCursor()
	m.ensureCursorVisible()
	return m, m.ensureThumbnailCmd()
}
