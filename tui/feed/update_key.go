package feed

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreddit/domain"
	"github.com/CrestNiraj12/terminalreddit/tui/common"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showAllHints {
		if key.Matches(msg, m.keys.ToggleHints) || key.Matches(msg, m.keys.Cancel) {
			m.showAllHints = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		return m.moveCursor(-m.visibleCount())
	case key.Matches(msg, m.keys.PageDown):
		return m.moveCursor(m.visibleCount())
	case key.Matches(msg, m.keys.Top):
		return m.moveCursor(-m.cursor)
	case key.Matches(msg, m.keys.Bottom):
		return m.moveCursor(len(m.ctrl.CurrentView()) - 1 - m.cursor)

	case key.Matches(msg, m.keys.Refresh):
		req := m.ctrl.Refresh()
		if req == nil {
			m.pagingNotice = "Still loading, try again in a moment."
			return m, nil
		}
		m.resetScroll()
		m.pagingNotice = ""
		return m, m.fetchCmd(req)

	case key.Matches(msg, m.keys.NextSort):
		return m.changeSort(m.ctrl.Sort().Step(1))
	case key.Matches(msg, m.keys.PrevSort):
		return m.changeSort(m.ctrl.Sort().Step(-1))
	case key.Matches(msg, m.keys.SortTop):
		return m.changeSort(domain.SortTop)
	case key.Matches(msg, m.keys.SortNew):
		return m.changeSort(domain.SortNew)
	case key.Matches(msg, m.keys.SortHot):
		return m.changeSort(domain.SortHot)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.SetValue(m.ctrl.SearchQuery())
		m.input.CursorEnd()
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.Filtering() {
			m.applyQuery("")
			return m, m.ensureThumbnailCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		p, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		if !common.IsSafeExternalURL(p.URL) {
			m.pagingNotice = "This post has no link to open."
			return m, nil
		}
		return m, m.openURL(p.URL)
	case key.Matches(msg, m.keys.Comments):
		p, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		target := m.commentsURL(p)
		if !common.IsSafeExternalURL(target) {
			m.pagingNotice = "Comments are not available for this post."
			return m, nil
		}
		return m, m.openURL(target)

	case key.Matches(msg, m.keys.Thumbnails):
		if m.thumbLoader == nil {
			return m, nil
		}
		m.showThumbs = !m.showThumbs
		return m, m.ensureThumbnailCmd()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.applyQuery("")
		return m, m.ensureThumbnailCmd()
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.ctrl.SearchQuery() {
		m.applyQuery(m.input.Value())
		return m, tea.Batch(cmd, m.ensureThumbnailCmd())
	}
	return m, cmd
}

// applyQuery narrows the visible list. It never triggers a fetch.
func (m *Model) applyQuery(q string) {
	m.ctrl.SetSearchQuery(q)
	m.resetScroll()
}

func (m Model) changeSort(sort domain.SortMode) (Model, tea.Cmd) {
	if sort == m.ctrl.Sort() {
		return m, nil
	}
	req := m.ctrl.ChangeSort(sort)
	if req == nil {
		if m.ctrl.IsFetching() {
			m.pagingNotice = "Still loading, try again in a moment."
		}
		return m, nil
	}
	m.resetScroll()
	m.pagingNotice = ""
	return m, tea.Batch(m.fetchCmd(req), emitSortChanged(sort))
}

func emitSortChanged(sort domain.SortMode) tea.Cmd {
	return func() tea.Msg {
		return SortChangedMsg{Sort: sort}
	}
}
