// Package logging configures the diagnostic log sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tesso57/postview/internal/application/settings"
)

// Logger wraps the charm logger with the file it writes to.
type Logger struct {
	*log.Logger
	path      string
	closeFile func() error
}

// New builds a logger from settings. Without a log file every event is
// discarded, since the terminal belongs to the UI.
func New(cfg settings.LogConfig) (*Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return &Logger{Logger: newSink(io.Discard, level)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{
		Logger:    newSink(f, level),
		path:      path,
		closeFile: f.Close,
	}, nil
}

func newSink(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "postview",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
}

// Path returns the log file path, or an empty string when discarding.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}
