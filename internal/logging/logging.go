// Package logging builds the structured logger used by the tarefas shell.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const Prefix = "tarefas"

// New returns a leveled logger writing to w. Unknown level or format names
// fall back to info and text.
func New(w io.Writer, level, format string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// WithSession tags every entry from the returned logger with a fresh
// session id, so the lines of one shell run can be grouped.
func WithSession(l *log.Logger) (*log.Logger, string) {
	id := uuid.Must(uuid.NewV7()).String()
	return l.With("session", id), id
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, "error", "text")
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
