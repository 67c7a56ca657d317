package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger with the given prefix.
// Debug enables debug-level records.
func NewLogger(w io.Writer, prefix string, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// OpenLogFile opens (or creates) a log file for appending.
// The local TUI owns the terminal, so its logs go to a file instead.
func OpenLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("tui: cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot open log file: %w", err)
	}
	return f, nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// discardLogger is used when no logger is supplied.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
