// Package logger provides leveled logging for sienapipe runs.
//
// Every component that talks to the outside world (subprocess execution,
// file parsing, the pipeline itself) receives a Logger rather than writing
// to a global sink. Implementations are thread-safe and support console,
// file, and fan-out destinations.
package logger

import "strings"

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger is the logging capability injected into sienapipe components.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// normalizeLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized
	}

	return "info" // Default level
}

// levelToInt converts a log level string to its numeric value.
func levelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo // Default to info if unknown
	}
}

// MultiLogger fans each message out to every wrapped logger.
// Useful for logging to both console and run log file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger wrapping the given loggers.
// Nil entries are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

// Debug forwards a debug-level message to every wrapped logger.
func (ml *MultiLogger) Debug(msg string) {
	for _, l := range ml.loggers {
		l.Debug(msg)
	}
}

// Info forwards an info-level message to every wrapped logger.
func (ml *MultiLogger) Info(msg string) {
	for _, l := range ml.loggers {
		l.Info(msg)
	}
}

// Warn forwards a warning-level message to every wrapped logger.
func (ml *MultiLogger) Warn(msg string) {
	for _, l := range ml.loggers {
		l.Warn(msg)
	}
}

// Error forwards an error-level message to every wrapped logger.
func (ml *MultiLogger) Error(msg string) {
	for _, l := range ml.loggers {
		l.Error(msg)
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug is a no-op implementation.
func (n *NoOpLogger) Debug(msg string) {}

// Info is a no-op implementation.
func (n *NoOpLogger) Info(msg string) {}

// Warn is a no-op implementation.
func (n *NoOpLogger) Warn(msg string) {}

// Error is a no-op implementation.
func (n *NoOpLogger) Error(msg string) {}
