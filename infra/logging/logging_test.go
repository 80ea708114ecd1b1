package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestOpen_WritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := Open(dir, log.DebugLevel)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	logger.Info("feed loaded", "posts", 25)
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "logs", "terminalreddit-*.log"))
	if len(matches) != 1 {
		t.Fatalf("expected one log file, got %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "feed loaded") || !strings.Contains(string(data), "posts=25") {
		t.Fatalf("unexpected log content: %q", data)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("level filter not applied: %q", out)
	}
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	if got := ParseLevel("bogus"); got != log.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := ParseLevel("debug"); got != log.DebugLevel {
		t.Fatalf("expected debug, got %v", got)
	}
}
