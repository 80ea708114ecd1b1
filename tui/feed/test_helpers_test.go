package feed

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/domain"
)

type fetchCall struct {
	sort  domain.SortMode
	after domain.PageToken
	limit int
}

// stubSource serves pages[i] / errs[i] for the i-th call.
type stubSource struct {
	mu    sync.Mutex
	pages []domain.FeedPage
	errs  []error
	calls []fetchCall
}

func (s *stubSource) FetchPosts(_ context.Context, sort domain.SortMode, after domain.PageToken, limit int) (domain.FeedPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.calls)
	s.calls = append(s.calls, fetchCall{sort: sort, after: after, limit: limit})
	if i < len(s.errs) && s.errs[i] != nil {
		return domain.FeedPage{}, s.errs[i]
	}
	if i < len(s.pages) {
		return s.pages[i], nil
	}
	return domain.FeedPage{}, nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubThumbs struct {
	err error
}

func (t stubThumbs) Load(context.Context, string) (image.Image, error) {
	if t.err != nil {
		return nil, t.err
	}
	return image.NewNRGBA(image.Rect(0, 0, 8, 8)), nil
}

func makePost(id, title string) domain.Post {
	return domain.Post{
		Name:        "t3_" + id,
		Title:       title,
		Author:      "user" + id,
		CreatedAt:   time.Now().Add(-2 * time.Hour),
		URL:         "https://example.com/" + id,
		Permalink:   "/r/Austin/comments/" + id + "/",
		NumComments: 42,
	}
}

func makePage(prefix string, n int, next domain.PageToken) domain.FeedPage {
	posts := make([]domain.Post, n)
	for i := range posts {
		id := fmt.Sprintf("%s%d", prefix, i)
		posts[i] = makePost(id, "Post "+id)
	}
	return domain.FeedPage{Posts: posts, NextToken: next}
}

func newTestModel(src *stubSource, thumbs app.ThumbnailLoader) Model {
	m := New(Deps{
		Controller:  app.NewFeedController(src, domain.SortTop, 25),
		Thumbnails:  thumbs,
		Title:       "/r/Austin",
		CommentsURL: func(p domain.Post) string { return "https://www.reddit.com" + p.Permalink },
	})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds fetch and thumbnail results back into m.
func deliver(m Model, cmd tea.Cmd) Model {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case FeedLoadedMsg, ThumbnailLoadedMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			m = deliver(m, next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
