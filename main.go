package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreddit/domain"
	"github.com/CrestNiraj12/terminalreddit/infra/config"
	"github.com/CrestNiraj12/terminalreddit/infra/logging"
	"github.com/CrestNiraj12/terminalreddit/infra/reddit"
	"github.com/CrestNiraj12/terminalreddit/infra/thumbnail"
	"github.com/CrestNiraj12/terminalreddit/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return `Usage: terminalreddit [--version|-version|-v] [--help|-h]

Environment:
  TERMINALREDDIT_BASE_URL             subreddit to browse (default ` + config.DefaultBaseURL + `)
  TERMINALREDDIT_SORT                 initial sort: top, new or hot
  TERMINALREDDIT_LIMIT                posts per page (1-100)
  TERMINALREDDIT_TIMEOUT              request timeout, e.g. 15s
  TERMINALREDDIT_LOAD_MORE_THRESHOLD  lines from the bottom that load the next page
  TERMINALREDDIT_STATE_DIR            where logs and ui state are kept
  TERMINALREDDIT_LOG_LEVEL            debug, info, warn or error`
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// initialSort prefers the sort saved from the last session over the configured one.
func initialSort(cfg config.Config, st config.UIState) domain.SortMode {
	if saved, err := domain.ParseSortMode(st.Sort); err == nil {
		return saved
	}
	return cfg.Sort
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("TerminalReddit %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := logging.Open(cfg.StateDir, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		logger.Warn("ignoring ui state", "path", cfg.UIStatePath, "err", err)
	}
	sort := initialSort(cfg, uiState)

	// 2. Build infrastructure.
	client := reddit.NewClient(cfg.BaseURL, cfg.Timeout)
	listing := reddit.NewListingService(client)
	thumbs := thumbnail.NewLoader(thumbnail.NewMemoryCache(), cfg.Timeout, logger)

	logger.Info("starting",
		"version", version,
		"base_url", cfg.BaseURL,
		"sort", sort,
		"limit", cfg.Limit,
	)

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Source:            listing,
		Thumbnails:        thumbs,
		Logger:            logger,
		Sort:              sort,
		Limit:             cfg.Limit,
		LoadMoreThreshold: cfg.LoadMoreThreshold,
		Title:             config.Title(cfg.BaseURL),
		CommentsURL:       client.CommentsURL,
		StatePath:         cfg.UIStatePath,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "terminalreddit: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
