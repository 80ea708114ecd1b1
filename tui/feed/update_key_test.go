package feed

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreddit/domain"
)

func TestKeys_SortSwitchReplacesFeedAndEmitsPrefs(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{
		makePage("top", 5, "t3_top4"),
		makePage("new", 2, "t3_new1"),
	}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())
	m.cursor = 3

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd == nil {
		t.Fatalf("expected a fetch for the new sort")
	}
	if m.ctrl.Sort() != domain.SortNew {
		t.Fatalf("tab should move to new, got %s", m.ctrl.Sort())
	}
	if m.cursor != 0 {
		t.Fatalf("sort change should reset the cursor")
	}

	var sawPrefs bool
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case SortChangedMsg:
			sawPrefs = msg.Sort == domain.SortNew
		case FeedLoadedMsg:
			m, _ = m.Update(msg)
		}
	}
	if !sawPrefs {
		t.Fatalf("expected SortChangedMsg for new")
	}
	view := m.ctrl.CurrentView()
	if len(view) != 2 || view[0].Name != "t3_new0" {
		t.Fatalf("sort change should replace the feed, got %d posts", len(view))
	}
	if src.calls[1].after != "" || src.calls[1].sort != domain.SortNew {
		t.Fatalf("sort change must fetch from the first page: %+v", src.calls[1])
	}
	if m.ctrl.PageToken() != "t3_new1" {
		t.Fatalf("expected token from new page, got %q", m.ctrl.PageToken())
	}
}

func TestKeys_SameSortIsNoop(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{makePage("a", 2, "")}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	_, cmd := m.Update(runes("1"))
	if cmd != nil {
		t.Fatalf("selecting the active sort should do nothing")
	}
	if src.callCount() != 1 {
		t.Fatalf("expected no extra fetch, got %d calls", src.callCount())
	}
}

func TestScroll_NearEndLoadsMore(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{
		makePage("a", 10, "t3_a9"),
		makePage("b", 10, "t3_b9"),
	}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	m, cmd := m.Update(runes("G"))
	if cmd == nil {
		t.Fatalf("jumping to the end should request the next page")
	}
	m = deliver(m, cmd)

	if got := len(m.ctrl.CurrentView()); got != 20 {
		t.Fatalf("expected appended page, got %d posts", got)
	}
	if src.calls[1].after != "t3_a9" {
		t.Fatalf("load more should pass the stored token, got %q", src.calls[1].after)
	}
	if m.cursor != 9 {
		t.Fatalf("cursor should stay on the same post, got %d", m.cursor)
	}
}

func TestScroll_AtTopDoesNotLoadMore(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{makePage("a", 50, "t3_a49")}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	m, cmd := m.Update(runes("j"))
	if cmd != nil {
		t.Fatalf("scrolling near the top should not fetch")
	}
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.cursor)
	}
	if src.callCount() != 1 {
		t.Fatalf("expected a single fetch, got %d", src.callCount())
	}
}

func TestScroll_EndOfFeedStopsPaging(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{makePage("a", 3, "")}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	_, cmd := m.Update(runes("G"))
	if cmd != nil {
		t.Fatalf("no next token means no more pages")
	}
	if src.callCount() != 1 {
		t.Fatalf("expected a single fetch, got %d", src.callCount())
	}
}

func TestSearch_FiltersWithoutFetching(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{{Posts: []domain.Post{
		makePost("1", "Bats over Congress"),
		makePost("2", "Best tacos"),
		makePost("3", "bat signal spotted"),
	}, NextToken: "t3_3"}}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	m, _ = m.Update(runes("/"))
	if !m.IsEditing() {
		t.Fatalf("/ should focus the search bar")
	}
	for _, r := range "bat" {
		m, _ = m.Update(runes(string(r)))
	}
	if got := len(m.ctrl.CurrentView()); got != 2 {
		t.Fatalf("expected 2 matches for bat, got %d", got)
	}
	if src.callCount() != 1 {
		t.Fatalf("typing must never fetch, got %d calls", src.callCount())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsEditing() {
		t.Fatalf("esc should leave the search bar")
	}
	if got := len(m.ctrl.CurrentView()); got != 3 {
		t.Fatalf("clearing the search should restore all posts, got %d", got)
	}
}

func TestSearch_EnterKeepsQuery(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{{Posts: []domain.Post{
		makePost("1", "Bats"),
		makePost("2", "Tacos"),
	}}}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	m, _ = m.Update(runes("/"))
	m, _ = m.Update(runes("t"))
	m, _ = m.Update(runes("a"))
	m, _ = m.Update(runes("c"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.IsEditing() {
		t.Fatalf("enter should leave the search bar")
	}
	if m.ctrl.SearchQuery() != "tac" {
		t.Fatalf("expected query to be kept, got %q", m.ctrl.SearchQuery())
	}
	// Plain keys are navigation again, not text.
	m, _ = m.Update(runes("q"))
	if m.ctrl.SearchQuery() != "tac" {
		t.Fatalf("query should not change outside the search bar")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.ctrl.Filtering() {
		t.Fatalf("esc should clear an active filter")
	}
}

func TestKeys_OpenWithoutSafeURLShowsNotice(t *testing.T) {
	post := makePost("1", "Self post")
	post.URL = "/r/Austin/comments/1/"
	src := &stubSource{pages: []domain.FeedPage{{Posts: []domain.Post{post}}}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	m, cmd := m.Update(runes("o"))
	if cmd != nil {
		t.Fatalf("unsafe urls must not be opened")
	}
	if m.pagingNotice == "" {
		t.Fatalf("expected a notice")
	}

	_, cmd = m.Update(runes("c"))
	if cmd == nil {
		t.Fatalf("comments link should be opened")
	}
}
