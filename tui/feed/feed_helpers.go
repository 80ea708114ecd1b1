package feed

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/domain"
)

func (m Model) selectedPost() (domain.Post, bool) {
	view := m.ctrl.CurrentView()
	if m.cursor < 0 || m.cursor >= len(view) {
		return domain.Post{}, false
	}
	return view[m.cursor], true
}

// listViewportHeight is the number of terminal lines left for cards once the
// header and footer are drawn.
func (m Model) listViewportHeight() int {
	h := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter())
	return max(h, cardHeight)
}

func (m Model) visibleCount() int {
	return max((m.listViewportHeight()+cardGap)/cardStride, 1)
}

func (m *Model) resetScroll() {
	m.cursor = 0
	m.startIndex = 0
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.CurrentView())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) ensureCursorVisible() {
	n := len(m.ctrl.CurrentView())
	vc := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+vc {
		m.startIndex = m.cursor - vc + 1
	}
	m.startIndex = min(m.startIndex, max(n-vc, 0))
	m.startIndex = max(m.startIndex, 0)
}

// scrollMetrics reports the list geometry in terminal lines.
func (m Model) scrollMetrics() (offset, contentHeight, viewportHeight int) {
	n := len(m.ctrl.CurrentView())
	return m.startIndex * cardStride, n * cardStride, m.listViewportHeight()
}

func (m Model) moveCursor(delta int) (Model, tea.Cmd) {
	if len(m.ctrl.CurrentView()) == 0 {
		return m, m.maybeLoadMore()
	}
	m.cursor += delta
	m.clampCursor()
	m.ensureCursorVisible()
	return m, tea.Batch(m.maybeLoadMore(), m.ensureThumbnailCmd())
}

// maybeLoadMore is evaluated on every scroll event. The controller decides
// whether a fetch may actually start.
func (m *Model) maybeLoadMore() tea.Cmd {
	offset, content, viewport := m.scrollMetrics()
	if !app.ShouldLoadMore(offset, content, viewport, m.loadMoreThreshold) {
		return nil
	}
	return m.fetchCmd(m.ctrl.LoadMore())
}
