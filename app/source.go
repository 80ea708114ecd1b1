package app

import (
	"context"
	"image"

	"github.com/CrestNiraj12/terminalreddit/domain"
)

// DefaultPageLimit is the page size requested when none is configured.
const DefaultPageLimit = 25

// FeedSource fetches pages of posts from the forum listing.
type FeedSource interface {
	// FetchPosts returns the page that starts after the given cursor.
	// An empty cursor requests the first page. An empty NextToken in the
	// returned page means the end of the feed.
	FetchPosts(ctx context.Context, sort domain.SortMode, after domain.PageToken, limit int) (domain.FeedPage, error)
}

// ThumbnailLoader resolves a post thumbnail URL to a decoded image.
type ThumbnailLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// ImageCache is the key/value store used by thumbnail loaders.
// Implementations decide lifetime; callers must not rely on eviction.
type ImageCache interface {
	Get(url string) (image.Image, bool)
	Set(url string, img image.Image)
}
