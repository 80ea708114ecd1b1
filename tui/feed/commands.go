package feed

import (
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/tui/common"
)

// fetchCmd runs req off the update loop. A nil request (suppressed by the
// controller) yields a nil command.
func (m Model) fetchCmd(req *app.FetchRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	ctrl, ctx, r := m.ctrl, m.ctx, *req
	m.logger.Debug("fetching posts", "kind", r.Kind, "sort", r.Sort, "after", r.After, "seq", r.Seq)
	return func() tea.Msg {
		return FeedLoadedMsg{Result: ctrl.Execute(ctx, r)}
	}
}

func (m Model) openURL(rawURL string) tea.Cmd {
	logger := m.logger
	return func() tea.Msg {
		if !common.IsSafeExternalURL(rawURL) {
			return nil
		}
		if err := browserCommand(rawURL).Start(); err != nil {
			logger.Warn("opening browser", "url", rawURL, "err", err)
		}
		return nil
	}
}

func browserCommand(rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}
