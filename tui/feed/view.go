package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/domain"
	"github.com/CrestNiraj12/terminalreddit/tui/common"
)

const loadErrorBanner = "Failed to load posts. Press r to try again."

// View renders the feed as a string.
func (m Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	if m.showAllHints {
		return header + "\n" + m.renderKeyDialog() + "\n" + footer
	}

	st := m.ctrl.State()
	bodyHeight := m.listViewportHeight()

	var body string
	switch {
	case st.Fetching && st.Total == 0:
		body = fmt.Sprintf("  %s Loading posts...", m.spinner.View())
	case st.Err != nil && st.Total == 0:
		body = common.ErrorStyle.Render("  "+loadErrorBanner) + "\n" +
			common.StatusBarStyle.Render("  "+errorDetail(st.Err))
	case len(st.Posts) == 0 && m.ctrl.Filtering():
		body = fmt.Sprintf("  No posts match %q.", st.Query)
	case len(st.Posts) == 0:
		body = "  No posts yet."
	default:
		body = m.renderList(st.Posts)
	}
	body = clipLines(body, bodyHeight)
	body = padLines(body, bodyHeight)

	return header + "\n" + body + "\n" + footer
}

func (m Model) renderHeader() string {
	title := m.title
	if title == "" {
		title = "reddit"
	}
	top := common.AppTitleStyle.Padding(1, 0, 0, 1).Render(title) +
		common.TaglineStyle.Render("<scroll the front page without leaving the terminal>")
	header := top + "\n" + m.renderTabs()
	if bar := m.renderSearchBar(); bar != "" {
		header += "\n" + bar
	}
	return clampLinesToWidth(header, m.width)
}

func (m Model) renderSearchBar() string {
	if m.searching {
		return "  " + m.input.View()
	}
	if m.ctrl.Filtering() {
		st := m.ctrl.State()
		return "  " + common.SearchPromptStyle.Render("/ ") + st.Query +
			common.StatusBarStyle.Render(fmt.Sprintf("  (%d of %d • esc to clear)", len(st.Posts), st.Total))
	}
	return ""
}

func (m Model) renderList(posts []domain.Post) string {
	listWidth := m.width
	showPanel := m.showThumbs && m.thumbLoader != nil && m.width >= thumbPanelMinWidth
	panelWidth := thumbCols*2 + 5
	if showPanel {
		listWidth -= panelWidth
	}
	listWidth = max(listWidth-2, 24)

	start := min(max(m.startIndex, 0), len(posts)-1)
	end := min(start+m.visibleCount(), len(posts))

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, m.renderPostCard(posts[i], i == m.cursor, listWidth))
	}
	list := lipgloss.NewStyle().MarginLeft(1).Render(strings.Join(cards, strings.Repeat("\n", cardGap+1)))
	if !showPanel {
		return list
	}
	p, ok := m.selectedPost()
	if !ok {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, m.renderThumbnailPanel(p))
}

func (m Model) renderPostCard(p domain.Post, selected bool, width int) string {
	inner := max(width-4, 12)

	title := padLines(clipLines(truncateToTwoLines(p.Title, inner), 2), 2)
	meta := []string{common.AuthorStyle.Render("u/" + p.Author)}
	if ts := relativeTime(p.CreatedAt); ts != "" {
		meta = append(meta, common.TimestampStyle.Render(ts))
	}
	meta = append(meta, common.CommentCountStyle.Render(common.Plural(p.NumComments, "comment", "comments")))
	if p.HasThumbnail() {
		meta = append(meta, common.TimestampStyle.Render("▣"))
	}

	body := common.ContentStyle.Render(title) + "\n" + strings.Join(meta, common.TimestampStyle.Render(" • "))
	body = clampLinesToWidth(body, inner)

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(width - 2).Render(body)
}

func (m Model) renderThumbnailPanel(p domain.Post) string {
	w, h := thumbCols*2, thumbRows
	var body string
	switch {
	case !p.HasThumbnail():
		body = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, common.TimestampStyle.Render("no thumbnail"))
	case m.thumbs[p.Thumbnail] != "":
		body = m.thumbs[p.Thumbnail]
	case m.thumbFailed[p.Thumbnail]:
		body = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, common.TimestampStyle.Render("thumbnail unavailable"))
	default:
		body = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.spinner.View()+" loading")
	}
	return common.ThumbnailFrameStyle.Render(body)
}

func (m Model) renderFooter() string {
	st := m.ctrl.State()
	var status string
	switch {
	case m.pagingNotice != "":
		status = m.pagingNotice
	case st.Fetching && st.FetchKind == app.FetchMore:
		status = m.spinner.View() + " Loading more..."
	case st.Err != nil && st.Total > 0:
		status = common.ErrorStyle.Render(loadErrorBanner)
	case st.Total > 0 && !st.HasMore:
		status = "End of feed."
	case st.Total > 0:
		status = fmt.Sprintf("%s • %d posts", st.Sort.Label(), st.Total)
	}
	return common.StatusBarStyle.Render("  "+status) + "\n" + m.helpView()
}

func errorDetail(err error) string {
	if err == nil {
		return ""
	}
	return ansi.Truncate(err.Error(), 160, "...")
}
