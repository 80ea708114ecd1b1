package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/CrestNiraj12/terminalreddit/domain"
)

// listingService implements app.FeedSource using the subreddit listing API.
type listingService struct {
	client *Client
}

// NewListingService creates a FeedSource backed by the listing API.
func NewListingService(client *Client) *listingService {
	return &listingService{client: client}
}

// listingResponse mirrors {"kind":"Listing","data":{"children":[...],"after":...}}.
type listingResponse struct {
	Kind string       `json:"kind"`
	Data *listingData `json:"data"`
}

type listingData struct {
	Children []listingChild `json:"children"` // nil when the key is missing or null
	After    *string        `json:"after"`
}

type listingChild struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// requiredPostKeys must be present and non-null in every child payload.
var requiredPostKeys = []string{"title", "author", "created_utc", "url", "num_comments"}

// wirePost is the subset of a link payload we care about.
type wirePost struct {
	Name        string  `json:"name,omitempty"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink,omitempty"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	NumComments int     `json:"num_comments"`
}

func (s *listingService) FetchPosts(ctx context.Context, sort domain.SortMode, after domain.PageToken, limit int) (domain.FeedPage, error) {
	const op = "fetching listing"

	if !sort.Valid() {
		return domain.FeedPage{}, &domain.FetchError{Kind: domain.ErrInvalidURL, Op: op, Err: fmt.Errorf("unknown sort %q", sort)}
	}
	if limit <= 0 {
		return domain.FeedPage{}, &domain.FetchError{Kind: domain.ErrInvalidURL, Op: op, Err: fmt.Errorf("limit must be positive, got %d", limit)}
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if after != "" {
		query.Set("after", string(after))
	}
	target, err := s.client.buildURL(string(sort)+".json", query)
	if err != nil {
		return domain.FeedPage{}, &domain.FetchError{Kind: domain.ErrInvalidURL, Op: op, Err: err}
	}

	data, err := s.client.Get(ctx, target)
	if err != nil {
		return domain.FeedPage{}, &domain.FetchError{Kind: domain.ErrTransport, Op: op, Err: err}
	}

	page, err := decodeListing(data)
	if err != nil {
		return domain.FeedPage{}, &domain.FetchError{Kind: domain.ErrDecode, Op: op, Err: err}
	}
	return page, nil
}

func decodeListing(data []byte) (domain.FeedPage, error) {
	var resp listingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.FeedPage{}, fmt.Errorf("parsing listing: %w", err)
	}
	if resp.Kind != "Listing" {
		return domain.FeedPage{}, fmt.Errorf("unexpected kind %q", resp.Kind)
	}
	if resp.Data == nil {
		return domain.FeedPage{}, errors.New("listing has no data")
	}
	if resp.Data.Children == nil {
		return domain.FeedPage{}, errors.New("listing has no children")
	}

	posts, err := mapPosts(resp.Data.Children)
	if err != nil {
		return domain.FeedPage{}, err
	}
	page := domain.FeedPage{Posts: posts}
	if resp.Data.After != nil {
		page.NextToken = domain.PageToken(*resp.Data.After)
	}
	return page, nil
}

func mapPosts(children []listingChild) ([]domain.Post, error) {
	posts := make([]domain.Post, 0, len(children))
	for i, ch := range children {
		w, err := decodePost(ch.Data)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		posts = append(posts, mapPost(w))
	}
	return posts, nil
}

func decodePost(raw json.RawMessage) (wirePost, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return wirePost{}, fmt.Errorf("parsing post: %w", err)
	}
	if fields == nil {
		return wirePost{}, errors.New("post has no data")
	}
	for _, k := range requiredPostKeys {
		if v, ok := fields[k]; !ok || string(v) == "null" {
			return wirePost{}, fmt.Errorf("post missing %q", k)
		}
	}
	var w wirePost
	if err := json.Unmarshal(raw, &w); err != nil {
		return wirePost{}, fmt.Errorf("parsing post: %w", err)
	}
	return w, nil
}

func mapPost(w wirePost) domain.Post {
	thumb := ""
	if w.Thumbnail != nil {
		thumb = html.UnescapeString(*w.Thumbnail)
	}
	return domain.Post{
		Name:        w.Name,
		Title:       html.UnescapeString(w.Title),
		Author:      w.Author,
		CreatedAt:   unixSeconds(w.CreatedUTC),
		URL:         html.UnescapeString(w.URL),
		Permalink:   w.Permalink,
		Thumbnail:   thumb,
		NumComments: max(w.NumComments, 0),
	}
}

func unixSeconds(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}

// CommentsURL returns the absolute comments page for a post, or "" when the
// post has no permalink.
func (c *Client) CommentsURL(p domain.Post) string {
	if p.Permalink == "" {
		return ""
	}
	base, err := url.Parse(c.baseURL)
	if err != nil || base.Host == "" {
		return ""
	}
	return base.Scheme + "://" + base.Host + p.Permalink
}
