// Package logging writes the portal's activity log: one line per entry,
// appended to a file under the data directory. The shell reads the file
// back through Tail for its activity screen, so entries must stay
// single-line.
package logging

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is the severity tag written in front of each entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger appends to a single log file held open for the process lifetime.
// All methods are safe on a nil receiver so callers can log without
// checking whether a logger was wired.
type Logger struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// New opens (or creates) the log file at path in append mode.
func New(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{path: path, file: file}, nil
}

// Path returns the file backing this logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close releases the underlying file. Entries logged afterwards are
// dropped.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Append writes one entry. Newlines in the message are flattened so a
// single entry can never span lines.
func (l *Logger) Append(level Level, message string) {
	if l == nil {
		return
	}
	message = strings.ReplaceAll(strings.TrimSpace(message), "\n", " ")
	stamp := time.Now().UTC().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	fmt.Fprintf(l.file, "%s [%s] %s\n", stamp, level, message)
}

// Tail returns up to n of the most recent entries, oldest first. It reads
// the file from disk so it also sees entries written by earlier runs.
func (l *Logger) Tail(n int) []string {
	if l == nil || n <= 0 {
		return nil
	}
	file, err := os.Open(l.Path())
	if err != nil {
		return nil
	}
	defer file.Close()

	// Sliding window over the scan keeps memory bounded by n.
	recent := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if len(recent) == n {
			copy(recent, recent[1:])
			recent = recent[:n-1]
		}
		recent = append(recent, scanner.Text())
	}
	if len(recent) == 0 {
		return nil
	}
	return recent
}

// Printf appends an informational entry. It satisfies the small logger
// interfaces used across the client packages.
func (l *Logger) Printf(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Info appends an informational entry.
func (l *Logger) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logger) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logger) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
