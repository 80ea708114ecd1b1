package feed

import (
	"errors"
	"strings"
	"testing"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/domain"
)

func TestInit_LoadsFirstPage(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{makePage("a", 3, "t3_a2")}}
	m := newTestModel(src, nil)

	m = deliver(m, m.Init())

	if got := len(m.ctrl.CurrentView()); got != 3 {
		t.Fatalf("expected 3 posts after initial load, got %d", got)
	}
	if src.calls[0].after != "" || src.calls[0].sort != domain.SortTop || src.calls[0].limit != 25 {
		t.Fatalf("unexpected first request: %+v", src.calls[0])
	}
	if m.ctrl.IsFetching() {
		t.Fatalf("fetch should be finished")
	}
}

func TestUpdate_StaleFeedLoaded_IgnoredBySeq(t *testing.T) {
	src := &stubSource{}
	m := newTestModel(src, nil)
	_ = m.Init() // fetch in flight, never delivered

	updated, cmd := m.Update(FeedLoadedMsg{Result: app.FetchResult{
		Seq:  99,
		Kind: app.FetchInitial,
		Page: makePage("x", 2, ""),
	}})
	if cmd != nil {
		t.Fatalf("expected nil cmd for stale response")
	}
	if len(updated.ctrl.CurrentView()) != 0 {
		t.Fatalf("stale response should not mutate feed")
	}
	if !updated.ctrl.IsFetching() {
		t.Fatalf("stale response should not clear fetching state")
	}
}

func TestClose_DropsLateResults(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{makePage("a", 3, "")}}
	m := newTestModel(src, nil)
	cmd := m.Init()

	m.Close()
	m = deliver(m, cmd)

	if len(m.ctrl.CurrentView()) != 0 {
		t.Fatalf("results after Close must be dropped")
	}
	if m.ctx.Err() == nil {
		t.Fatalf("Close should cancel the fetch context")
	}
}

func TestKeys_RefreshWhileFetchingIsSuppressed(t *testing.T) {
	src := &stubSource{}
	m := newTestModel(src, nil)
	_ = m.Init()

	updated, cmd := m.Update(runes("r"))
	if cmd != nil {
		t.Fatalf("refresh during a fetch must not start another one")
	}
	if !strings.Contains(updated.pagingNotice, "Still loading") {
		t.Fatalf("expected a notice, got %q", updated.pagingNotice)
	}
}

func TestKeys_SortSwitchWhileFetchingIsSuppressed(t *testing.T) {
	src := &stubSource{}
	m := newTestModel(src, nil)
	_ = m.Init()

	updated, cmd := m.Update(runes("2"))
	if cmd != nil {
		t.Fatalf("sort change during a fetch must be dropped")
	}
	if updated.ctrl.Sort() != domain.SortTop {
		t.Fatalf("sort should be unchanged, got %s", updated.ctrl.Sort())
	}
}

func TestFetchError_ShowsBannerThenRetrySucceeds(t *testing.T) {
	src := &stubSource{
		errs:  []error{&domain.FetchError{Kind: domain.ErrTransport, Op: "fetching listing", Err: errors.New("boom")}},
		pages: []domain.FeedPage{{}, makePage("b", 2, "")},
	}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	if !strings.Contains(m.View(), loadErrorBanner) {
		t.Fatalf("expected error banner in view:\n%s", m.View())
	}

	m, cmd := m.Update(runes("r"))
	m = deliver(m, cmd)

	if m.ctrl.Err() != nil {
		t.Fatalf("successful retry should clear the error")
	}
	if strings.Contains(m.View(), loadErrorBanner) {
		t.Fatalf("banner should be gone after retry")
	}
	if len(m.ctrl.CurrentView()) != 2 {
		t.Fatalf("expected 2 posts after retry, got %d", len(m.ctrl.CurrentView()))
	}
}

func TestSortChangeFailure_ShowsBannerOnEmptyList(t *testing.T) {
	src := &stubSource{
		pages: []domain.FeedPage{makePage("a", 2, "t3_a1")},
		errs:  []error{nil, &domain.FetchError{Kind: domain.ErrTransport, Op: "fetching listing", Err: errors.New("offline")}},
	}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	m, cmd := m.Update(runes("2"))
	m = deliver(m, cmd)

	if len(m.ctrl.CurrentView()) != 0 {
		t.Fatalf("failed sort change should leave the list empty")
	}
	if m.ctrl.Sort() != domain.SortNew {
		t.Fatalf("new sort should be kept, got %s", m.ctrl.Sort())
	}
	if m.ctrl.IsFetching() || src.callCount() != 2 {
		t.Fatalf("expected no further fetch, got %d calls", src.callCount())
	}
	out := m.View()
	if !strings.Contains(out, loadErrorBanner) {
		t.Fatalf("expected error banner:\n%s", out)
	}
	if strings.Contains(out, "Post a0") {
		t.Fatalf("old posts should not be shown under the new sort")
	}
}

func TestRefreshFailure_ShowsBannerOnEmptyList(t *testing.T) {
	src := &stubSource{
		pages: []domain.FeedPage{makePage("a", 2, "t3_a1")},
		errs:  []error{nil, errors.New("offline")},
	}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())

	m, cmd := m.Update(runes("r"))
	m = deliver(m, cmd)

	if len(m.ctrl.CurrentView()) != 0 || m.ctrl.Err() == nil {
		t.Fatalf("failed refresh should clear the list and keep the error")
	}
	if !strings.Contains(m.View(), loadErrorBanner) {
		t.Fatalf("expected error banner:\n%s", m.View())
	}
}

func TestSearchBar_HiddenForWhitespaceQuery(t *testing.T) {
	src := &stubSource{pages: []domain.FeedPage{makePage("a", 2, "")}}
	m := newTestModel(src, nil)
	m = deliver(m, m.Init())
	m.ctrl.SetSearchQuery("   ")

	if bar := m.renderSearchBar(); bar != "" {
		t.Fatalf("whitespace query is not a filter, got %q", bar)
	}
	if strings.Contains(m.View(), "No posts match") {
		t.Fatalf("whitespace query should show all posts")
	}
}
