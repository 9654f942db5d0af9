// Package logging builds the leveled console logger used across claro.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix tags every line claro logs.
const Prefix = "claro"

// New returns a logger writing to w at the given level and format.
// Unknown values fall back to warn and text.
func New(w io.Writer, level, format string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     ParseLevel(level),
		Formatter: ParseFormatter(format),
		Prefix:    Prefix,
	})
}

// ParseLevel maps a config string to a log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter maps a config string to a log formatter.
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
