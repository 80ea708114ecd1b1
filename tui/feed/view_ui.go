package feed

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalreddit/domain"
	"github.com/CrestNiraj12/terminalreddit/tui/common"
)

func (m Model) helpView() string {
	var items []string
	switch {
	case m.searching:
		items = []string{
			"type to filter",
			"enter: keep",
			"esc: clear",
		}
	case len(m.ctrl.CurrentView()) > 0:
		items = []string{
			"j/k: focus",
			"o: open",
			"c: comments",
			"tab: sort",
			"/: search",
			"r: refresh",
			"q: quit",
			"?: all keys",
		}
	default:
		items = []string{
			"tab: sort",
			"r: refresh",
			"q: quit",
			"?: all keys",
		}
	}
	wrapWidth := max(m.width-2, 16)
	return common.HelpStyle.Width(wrapWidth).Render(" " + strings.Join(items, " • "))
}

func (m Model) renderKeyDialog() string {
	lines := []string{
		"j/k, up/down   move focus",
		"pgup/pgdn      page up/down",
		"g/G            top/bottom",
		"tab/shift+tab  next/prev sort",
		"1/2/3          top/new/hot",
		"r              refresh",
		"/              search titles",
		"esc            clear search",
		"o, enter       open link",
		"c              open comments",
		"i              toggle thumbnails",
		"q, ctrl+c      quit",
		"?              toggle this dialog",
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF4500")).
		Padding(0, 2).
		MarginLeft(2).
		Render(lipgloss.NewStyle().Bold(true).Render("Keys") + "\n\n" + strings.Join(lines, "\n"))
	return box
}

func (m Model) renderTabs() string {
	current := m.ctrl.Sort()
	rendered := make([]string, 0, len(domain.SortModes))
	for _, s := range domain.SortModes {
		if s == current {
			rendered = append(rendered, common.TabActiveStyle.Render(s.Label()))
		} else {
			rendered = append(rendered, common.TabInactiveStyle.Render(s.Label()))
		}
	}
	return lipgloss.NewStyle().MarginLeft(2).PaddingTop(1).Render(strings.Join(rendered, " "))
}
