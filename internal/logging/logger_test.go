package logging

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.log")
	logger, err := New(path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	for i := 0; i < 5; i++ {
		logger.Info("entry-%d", i)
	}
	lines := logger.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestLevelsAreRecorded(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(filepath.Join(dir, "portal.log"))
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Warn("token rejected")
	logger.Error("request failed")
	lines := logger.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("levels missing from %v", lines)
	}
}

func TestTailSeesEntriesFromEarlierRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.log")
	first, err := New(path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	first.Info("from-first-run")
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	first.Info("dropped-after-close")

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen logger: %v", err)
	}
	second.Info("from-second-run")
	lines := second.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "from-first-run") || !strings.Contains(lines[1], "from-second-run") {
		t.Fatalf("unexpected tail: %v", lines)
	}
}

func TestMultilineMessagesStayOnOneLine(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(filepath.Join(dir, "portal.log"))
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("first\nsecond")
	lines := logger.Tail(10)
	if len(lines) != 1 {
		t.Fatalf("entry split across %d lines: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "first second") {
		t.Fatalf("newline not flattened: %q", lines[0])
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("ignored")
	if lines := logger.Tail(5); lines != nil {
		t.Fatalf("expected nil tail from nil logger, got %v", lines)
	}
}
