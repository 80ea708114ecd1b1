package common

import (
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
)

// IsSafeExternalURL reports whether raw is an absolute http(s) URL that may be
// handed to the system browser.
func IsSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}

// Plural returns "1 comment" / "1,204 comments" style counts.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return humanize.Comma(int64(n)) + " " + plural
}
