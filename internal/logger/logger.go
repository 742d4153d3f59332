package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFile is the log file path, relative to the working directory.
const DefaultFile = "logs/toybox.log"

// DefaultMaxLines is how many recent lines the overlay keeps.
const DefaultMaxLines = 200

// Options configures New.
type Options struct {
	Level    slog.Level
	File     string // empty disables the file sink
	Stderr   bool
	MaxLines int
}

// Logger is a slog.Logger whose output is also kept in memory so the HUD can show the
// most recent lines, and appended to a file on disk.
type Logger struct {
	*slog.Logger
	lines *lineBuffer
	file  *os.File
}

// New builds the logger and ensures the log directory exists.
func New(opts Options) (*Logger, error) {
	if opts.MaxLines <= 0 {
		opts.MaxLines = DefaultMaxLines
	}
	l := &Logger{lines: &lineBuffer{max: opts.MaxLines}}
	writers := []io.Writer{l.lines}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		l.file = f
		writers = append(writers, f)
	}
	if opts.Stderr {
		writers = append(writers, os.Stderr)
	}
	l.Logger = slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: opts.Level}))
	return l, nil
}

// Discard returns a logger that only keeps lines in memory. Used by tests and
// headless runs with logging turned off.
func Discard() *Logger {
	l, _ := New(Options{Level: slog.LevelError + 1})
	return l
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	return l.lines.snapshot()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps debug, info, warn and error to a slog level. Unknown names are an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
}

// lineBuffer keeps the last max lines written to it.
type lineBuffer struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		b.lines = append(b.lines, line)
	}
	if over := len(b.lines) - b.max; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
	return len(p), nil
}

func (b *lineBuffer) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
