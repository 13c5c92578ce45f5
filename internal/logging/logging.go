package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var logger = newLogger()

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// The default is a tinted human-readable handler on stderr; LOG_FORMAT=json
// switches to JSON for log shippers.
func newLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		})
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message with structured key/value pairs.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an informational message with structured key/value pairs.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning with structured key/value pairs.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error with structured key/value pairs.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// InfoWithComponent logs an informational message tagged with a component.
func InfoWithComponent(component, msg string, args ...any) {
	logger.With("component", component).Info(msg, args...)
}

// WarnWithComponent logs a warning tagged with a component.
func WarnWithComponent(component, msg string, args ...any) {
	logger.With("component", component).Warn(msg, args...)
}

// ErrorWithComponent logs an error tagged with a component.
func ErrorWithComponent(component, msg string, args ...any) {
	logger.With("component", component).Error(msg, args...)
}
