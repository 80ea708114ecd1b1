package domain

import (
	"strings"
	"time"
)

// Post represents a single entry from the subreddit listing.
type Post struct {
	Name        string // Fullname, e.g. "t3_1abcde"
	Title       string
	Author      string
	CreatedAt   time.Time
	URL         string // Link target (article or self post)
	Permalink   string // Comments page path, e.g. "/r/Austin/comments/..."
	Thumbnail   string // May be empty or a placeholder keyword like "self"
	NumComments int
}

// HasThumbnail reports whether the thumbnail is a fetchable http(s) URL.
// Listings use keywords such as "self", "default" and "nsfw" in place of a URL.
func (p Post) HasThumbnail() bool {
	t := strings.ToLower(strings.TrimSpace(p.Thumbnail))
	return strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://")
}

// PageToken is the opaque cursor returned by the listing API.
// The zero value means there is no cursor.
type PageToken string

// FeedPage is one page of a listing.
type FeedPage struct {
	Posts     []Post
	NextToken PageToken // Empty when the end of the feed is reached
}
