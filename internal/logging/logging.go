// Package logging builds the charmbracelet/log loggers shared by the TUI and
// the CLI. The TUI owns the terminal, so logs normally go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Common structured logging keys.
const (
	KeyOp    = "op"
	KeyID    = "id"
	KeyCount = "count"
	KeyKey   = "key"
	KeyError = "err"
)

type Options struct {
	Level string
	// Path is the log file. Empty disables file output.
	Path string
	// Writer receives a copy of every record when set, e.g. stderr in --debug.
	Writer io.Writer
}

// New returns a logger and a func that closes the log file.
func New(opts Options) (*log.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var writers []io.Writer
	closeFn := func() error { return nil }
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}
	if opts.Writer != nil {
		writers = append(writers, opts.Writer)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "taskcal",
		ReportTimestamp: true,
	})
	return logger, closeFn, nil
}

// ParseLevel accepts debug, info, warn, error and fatal. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
