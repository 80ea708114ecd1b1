package feed

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreddit/app"
)

func (m *Model) ensureThumbnailCmd() tea.Cmd {
	if !m.showThumbs || m.thumbLoader == nil {
		return nil
	}
	p, ok := m.selectedPost()
	if !ok || !p.HasThumbnail() {
		return nil
	}
	url := p.Thumbnail
	if _, ok := m.thumbs[url]; ok {
		return nil
	}
	if m.thumbLoading[url] || m.thumbFailed[url] {
		return nil
	}
	m.thumbLoading[url] = true
	return fetchThumbnail(m.ctx, m.thumbLoader, url, thumbCols, thumbRows)
}

func fetchThumbnail(ctx context.Context, loader app.ThumbnailLoader, url string, w, h int) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(ctx, url)
		if err != nil {
			return ThumbnailLoadedMsg{URL: url, Err: err}
		}
		return ThumbnailLoadedMsg{URL: url, Preview: renderANSIThumbnail(img, w, h)}
	}
}

// renderANSIThumbnail samples img onto a w x h grid of two-column truecolor cells.
func renderANSIThumbnail(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			sy := b.Min.Y + y*b.Dy()/h
			c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
