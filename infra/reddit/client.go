package reddit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

const (
	userAgent       = "terminalreddit/0.1 (+https://github.com/CrestNiraj12/terminalreddit)"
	maxResponseSize = 8 * 1024 * 1024
)

// Client is a thin HTTP wrapper for the public listing API.
// It handles base URL construction and response status checks.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a listing API client for a subreddit base URL such as
// "https://www.reddit.com/r/Austin". A zero timeout disables the deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the subreddit base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildURL joins path and query onto the base URL.
func (c *Client) buildURL(path string, query url.Values) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", base.Scheme)
	}
	if base.Host == "" {
		return "", fmt.Errorf("missing host in %q", c.baseURL)
	}
	u := base.JoinPath(path)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Get performs a GET request and returns the body of a 2xx response.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s returned %d: %s", req.URL.Path, resp.StatusCode, snippet(data))
	}

	return data, nil
}

func snippet(b []byte) string {
	const n = 200
	return ansi.Truncate(strings.TrimSpace(string(b)), n, "...")
}
