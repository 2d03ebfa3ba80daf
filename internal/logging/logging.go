// Package logging configures the structured logger shared by all commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const DefaultLevel = "info"

// New returns a logger writing to w at the named level. An empty level
// means DefaultLevel.
func New(level string, w io.Writer) (*log.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "matrix",
	}), nil
}

// Open is like New but writes to path, creating parent directories. The
// returned closer must be called once the logger is no longer used. An empty
// path logs to stderr.
func Open(level, path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		l, err := New(level, os.Stderr)
		return l, io.NopCloser(nil), err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	l, err := New(level, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, f, nil
}
