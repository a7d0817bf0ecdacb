// Package logger provides the shared structured logger for wander.
// Backend failures that the core absorbs (rename pushes, history fetches,
// stale completions) are logged here rather than surfaced as fatal errors.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance used throughout wander.
var Logger *log.Logger

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	// Warn by default: while the TUI owns the terminal, stderr output is
	// only useful when redirected.
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the log level and optionally redirects output to a file.
func Configure(level, file string) error {
	var output io.Writer = os.Stderr
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		output = f
	}
	l := log.New(output)
	l.SetTimeFormat("")
	l.SetLevel(parseLevel(level))
	Logger = l
	return nil
}

func parseLevel(level string) log.Level {
	switch level {
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
