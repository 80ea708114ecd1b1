package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/terminalreddit/domain"
)

const (
	DefaultBaseURL           = "https://www.reddit.com/r/Austin"
	DefaultLimit             = 25
	DefaultTimeout           = 15 * time.Second
	DefaultLoadMoreThreshold = 6
	maxLimit                 = 100
)

// Config holds application-level configuration.
type Config struct {
	BaseURL           string          // e.g. "https://www.reddit.com/r/Austin"
	Sort              domain.SortMode // Initial sort when no UI state is saved
	Limit             int             // Page size
	Timeout           time.Duration   // Per-request HTTP timeout
	LoadMoreThreshold int             // Lines below the viewport that trigger load-more
	StateDir          string          // Logs and UI state live here
	UIStatePath       string
	LogLevel          string
}

// Load reads configuration from environment variables.
//
//	TERMINALREDDIT_BASE_URL            subreddit URL (default: https://www.reddit.com/r/Austin)
//	TERMINALREDDIT_SORT                top, new or hot (default: top)
//	TERMINALREDDIT_LIMIT               page size 1..100 (default: 25)
//	TERMINALREDDIT_TIMEOUT             request timeout, Go duration (default: 15s)
//	TERMINALREDDIT_LOAD_MORE_THRESHOLD lines (default: 6)
//	TERMINALREDDIT_STATE_DIR           default: ~/.config/terminalreddit
//	TERMINALREDDIT_LOG_LEVEL           debug, info, warn, error (default: info)
func Load() (Config, error) {
	base := strings.TrimSpace(os.Getenv("TERMINALREDDIT_BASE_URL"))
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid TERMINALREDDIT_BASE_URL: must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return Config{}, fmt.Errorf("invalid TERMINALREDDIT_BASE_URL: only http and https are allowed")
	}
	base = strings.TrimRight(parsed.String(), "/")

	sort := domain.SortTop
	if raw := os.Getenv("TERMINALREDDIT_SORT"); raw != "" {
		sort, err = domain.ParseSortMode(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TERMINALREDDIT_SORT: %w", err)
		}
	}

	limit, err := intEnv("TERMINALREDDIT_LIMIT", DefaultLimit)
	if err != nil {
		return Config{}, err
	}
	if limit < 1 || limit > maxLimit {
		return Config{}, fmt.Errorf("invalid TERMINALREDDIT_LIMIT: must be between 1 and %d", maxLimit)
	}

	timeout := DefaultTimeout
	if raw := strings.TrimSpace(os.Getenv("TERMINALREDDIT_TIMEOUT")); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil || timeout < 0 {
			return Config{}, fmt.Errorf("invalid TERMINALREDDIT_TIMEOUT: %q", raw)
		}
	}

	threshold, err := intEnv("TERMINALREDDIT_LOAD_MORE_THRESHOLD", DefaultLoadMoreThreshold)
	if err != nil {
		return Config{}, err
	}
	if threshold < 0 {
		return Config{}, fmt.Errorf("invalid TERMINALREDDIT_LOAD_MORE_THRESHOLD: must not be negative")
	}

	stateDir := strings.TrimSpace(os.Getenv("TERMINALREDDIT_STATE_DIR"))
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".config", "terminalreddit")
	}

	logLevel := strings.TrimSpace(os.Getenv("TERMINALREDDIT_LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		BaseURL:           base,
		Sort:              sort,
		Limit:             limit,
		Timeout:           timeout,
		LoadMoreThreshold: threshold,
		StateDir:          stateDir,
		UIStatePath:       filepath.Join(stateDir, "ui_state.json"),
		LogLevel:          logLevel,
	}, nil
}

func intEnv(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", name, raw)
	}
	return n, nil
}

// Title returns the display title for a subreddit base URL, e.g. "/r/Austin".
func Title(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return baseURL
	}
	return "/" + strings.Trim(u.Path, "/")
}
