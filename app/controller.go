package app

import (
	"context"
	"slices"
	"strings"

	"github.com/CrestNiraj12/terminalreddit/domain"
)

// FetchKind tells Apply how a successful page merges into the feed.
type FetchKind int

const (
	FetchInitial FetchKind = iota
	FetchMore
	FetchRefresh
	FetchSortChange
)

func (k FetchKind) String() string {
	switch k {
	case FetchInitial:
		return "initial"
	case FetchMore:
		return "more"
	case FetchRefresh:
		return "refresh"
	case FetchSortChange:
		return "sort"
	default:
		return "unknown"
	}
}

// Replaces reports whether a successful page replaces the feed wholesale.
// Only continuing an existing cursor chain appends.
func (k FetchKind) Replaces() bool {
	return k != FetchMore
}

// FetchRequest describes one fetch the owner must run and hand back to Apply.
type FetchRequest struct {
	Seq   int
	Kind  FetchKind
	Sort  domain.SortMode
	After domain.PageToken
	Limit int
}

// FetchResult is the outcome of a FetchRequest.
type FetchResult struct {
	Seq  int
	Kind FetchKind
	Page domain.FeedPage
	Err  error
}

// FeedViewState is a read-only snapshot for rendering.
type FeedViewState struct {
	Posts     []domain.Post // Filtered when a search query is active
	Total     int           // Number of loaded posts, ignoring the filter
	Sort      domain.SortMode
	Query     string
	Fetching  bool
	FetchKind FetchKind // Meaningful only while Fetching
	HasMore   bool
	Err       error
}

// FeedController owns pagination, sort selection, fetch suppression and
// search filtering for one feed view.
//
// It is not safe for concurrent use. The owner calls the trigger methods and
// Apply from a single goroutine (the Bubble Tea update loop); only Execute may
// run elsewhere.
type FeedController struct {
	source FeedSource
	limit  int

	posts     []domain.Post
	filtered  []domain.Post
	pageToken domain.PageToken
	hasMore   bool
	fetching  bool
	inflight  FetchRequest
	seq       int
	sort      domain.SortMode
	query     string
	err       error
	closed    bool
}

// NewFeedController creates an empty controller. Invalid sort modes fall back
// to top and non-positive limits to DefaultPageLimit.
func NewFeedController(source FeedSource, sort domain.SortMode, limit int) *FeedController {
	if !sort.Valid() {
		sort = domain.SortTop
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return &FeedController{
		source:  source,
		limit:   limit,
		hasMore: true,
		sort:    sort,
	}
}

// LoadInitial requests the first page for the current sort.
func (c *FeedController) LoadInitial() *FetchRequest {
	if c.closed || c.fetching {
		return nil
	}
	return c.begin(FetchInitial, "")
}

// LoadMore requests the page after the current cursor. It returns nil when a
// fetch is in flight, the feed is exhausted, or there is no cursor to continue.
func (c *FeedController) LoadMore() *FetchRequest {
	if c.closed || c.fetching || !c.hasMore || c.pageToken == "" {
		return nil
	}
	return c.begin(FetchMore, c.pageToken)
}

// Refresh drops the loaded feed and requests the first page again.
func (c *FeedController) Refresh() *FetchRequest {
	if c.closed || c.fetching {
		return nil
	}
	c.resetFeed()
	return c.begin(FetchRefresh, "")
}

// ChangeSort switches the sort mode and requests its first page.
// Selecting the current mode is a no-op.
func (c *FeedController) ChangeSort(sort domain.SortMode) *FetchRequest {
	if c.closed || c.fetching || !sort.Valid() || sort == c.sort {
		return nil
	}
	c.sort = sort
	c.resetFeed()
	return c.begin(FetchSortChange, "")
}

// SetSearchQuery filters the view by case-insensitive title substring.
// Whitespace-only text clears the filter. It never triggers a fetch.
func (c *FeedController) SetSearchQuery(text string) {
	c.query = text
	c.refilter()
}

// CurrentView returns the posts to render, in feed order.
func (c *FeedController) CurrentView() []domain.Post {
	if c.Filtering() {
		return slices.Clone(c.filtered)
	}
	return slices.Clone(c.posts)
}

// Execute runs req against the source. It only reads immutable fields, so the
// owner may call it from a command goroutine.
func (c *FeedController) Execute(ctx context.Context, req FetchRequest) FetchResult {
	page, err := c.source.FetchPosts(ctx, req.Sort, req.After, req.Limit)
	return FetchResult{Seq: req.Seq, Kind: req.Kind, Page: page, Err: err}
}

// Apply merges a fetch result. Results that do not belong to the request in
// flight, or arrive after Close, are ignored and Apply returns false.
func (c *FeedController) Apply(res FetchResult) bool {
	if c.closed || !c.fetching || res.Seq != c.inflight.Seq {
		return false
	}
	c.fetching = false
	if res.Err != nil {
		c.err = res.Err
		return true
	}

	c.err = nil
	if res.Kind.Replaces() {
		c.posts = slices.Clone(res.Page.Posts)
	} else {
		c.posts = append(c.posts, res.Page.Posts...)
	}
	c.pageToken = res.Page.NextToken
	c.hasMore = res.Page.NextToken != ""
	c.refilter()
	return true
}

// Close marks the controller as torn down. Pending results become no-ops.
func (c *FeedController) Close() {
	c.closed = true
	c.fetching = false
}

// State returns a rendering snapshot.
func (c *FeedController) State() FeedViewState {
	return FeedViewState{
		Posts:     c.CurrentView(),
		Total:     len(c.posts),
		Sort:      c.sort,
		Query:     c.query,
		Fetching:  c.fetching,
		FetchKind: c.inflight.Kind,
		HasMore:   c.hasMore,
		Err:       c.err,
	}
}

func (c *FeedController) Posts() []domain.Post        { return slices.Clone(c.posts) }
func (c *FeedController) PageToken() domain.PageToken { return c.pageToken }
func (c *FeedController) HasMore() bool               { return c.hasMore }
func (c *FeedController) IsFetching() bool            { return c.fetching }
func (c *FeedController) Sort() domain.SortMode       { return c.sort }
func (c *FeedController) SearchQuery() string         { return c.query }
func (c *FeedController) Err() error                  { return c.err }

// Filtering reports whether a non-empty search query is active.
func (c *FeedController) Filtering() bool {
	return strings.TrimSpace(c.query) != ""
}

func (c *FeedController) begin(kind FetchKind, after domain.PageToken) *FetchRequest {
	c.seq++
	c.fetching = true
	c.inflight = FetchRequest{
		Seq:   c.seq,
		Kind:  kind,
		Sort:  c.sort,
		After: after,
		Limit: c.limit,
	}
	req := c.inflight
	return &req
}

func (c *FeedController) resetFeed() {
	c.posts = nil
	c.pageToken = ""
	c.hasMore = true
	c.refilter()
}

func (c *FeedController) refilter() {
	if !c.Filtering() {
		c.filtered = nil
		return
	}
	c.filtered = FilterByTitle(c.posts, c.query)
}

// FilterByTitle returns the posts whose title contains query, ignoring case
// and surrounding whitespace, in their original order.
func FilterByTitle(posts []domain.Post, query string) []domain.Post {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}

// ShouldLoadMore is the scroll rule for pagination: true once the unscrolled
// content below the viewport is shorter than threshold.
func ShouldLoadMore(offset, contentHeight, viewportHeight, threshold int) bool {
	return offset > contentHeight-viewportHeight-threshold
}
