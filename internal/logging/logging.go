// Package logging builds the slog loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Setup creates a logger writing JSON to logFile and, when stderr is non-nil,
// text to stderr. The TUI passes a nil stderr so the screen stays clean.
// Returns the logger and a cleanup function to close the file.
func Setup(logFile string, stderr io.Writer, level slog.Level) (*slog.Logger, func() error) {
	noop := func() error { return nil }

	if logFile == "" {
		if stderr == nil {
			return slog.New(slog.DiscardHandler), noop
		}
		return slog.New(textHandler(stderr, level)), noop
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err == nil {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return NewWithWriters(stderr, file, level), file.Close
		}
	}

	// Fall back to stderr only if the file cannot be opened.
	if stderr == nil {
		return slog.New(slog.DiscardHandler), noop
	}
	logger := slog.New(textHandler(stderr, level))
	logger.Warn("failed to open log file, using stderr only", "file", logFile)
	return logger, noop
}

// NewWithWriters fans out to a text handler on stderr and a JSON handler on file.
// Either writer may be nil.
func NewWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	var handlers []slog.Handler
	if stderr != nil {
		handlers = append(handlers, textHandler(stderr, level))
	}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	}
	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func textHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}
