// Package log wraps log/slog with a component attribute so every subsystem
// tags its output consistently.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is a component-scoped structured logger.
type Logger struct {
	*slog.Logger
	component string
}

// New creates a logger writing text records to stderr at the given level
// ("debug", "info", "warn", "error").
func New(level string) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{Logger: slog.New(handler), component: "fleetfin"}
}

// WithComponent returns a logger tagged with a subsystem name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
