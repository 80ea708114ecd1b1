package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/webp"

	"github.com/CrestNiraj12/terminalreddit/app"
	"github.com/CrestNiraj12/terminalreddit/infra/logging"
)

const maxImageSize = 4 * 1024 * 1024

// ErrUnsupportedURL is returned for thumbnails that are not http(s) URLs.
var ErrUnsupportedURL = errors.New("thumbnail: unsupported url")

// Loader fetches and decodes thumbnails, consulting the cache first.
type Loader struct {
	cache  app.ImageCache
	http   *http.Client
	logger *log.Logger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(c app.ImageCache, timeout time.Duration, logger *log.Logger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{
		cache:  c,
		http:   &http.Client{Timeout: timeout},
		logger: logger.WithPrefix("thumbnail"),
	}
}

// Load returns the decoded image for rawURL.
func (l *Loader) Load(ctx context.Context, rawURL string) (image.Image, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !isFetchable(rawURL) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	if img, ok := l.cache.Get(rawURL); ok {
		return img, nil
	}

	img, err := l.fetch(ctx, rawURL)
	if err != nil {
		l.logger.Warn("load failed", "url", rawURL, "err", err)
		return nil, err
	}
	l.cache.Set(rawURL, img)
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching thumbnail: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("thumbnail status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("reading thumbnail: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding thumbnail: %w", err)
	}
	return img, nil
}

func isFetchable(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
