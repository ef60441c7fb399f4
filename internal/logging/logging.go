// Package logging builds the process slog.Logger on top of charmbracelet/log.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options selects the handler settings. Level and Format take the config
// strings ("debug", "json", ...); unknown values fall back to warn and text.
type Options struct {
	Level      string
	Format     string
	RunID      string
	Timestamps bool
}

// New returns a logger writing to w. Every record carries the run id.
func New(w io.Writer, opts Options) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		Prefix:          "tripplan",
	})
	logger := slog.New(handler)
	if opts.RunID != "" {
		logger = logger.With("run", opts.RunID)
	}
	return logger
}

// NewRunID returns a short random id for correlating one invocation's logs.
func NewRunID() string {
	return uuid.NewString()[:8]
}

func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
