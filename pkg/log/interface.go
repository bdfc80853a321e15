// Package log provides the structured logging interface used by PanelKit.
//
// The interface is intentionally small and slog-shaped so implementations
// can be swapped, while the default implementation is backed by zerolog.
// Harmonization and modeling operations log with the standard attribute
// keys defined in attributes.go, which keeps coverage and data-quality
// events filterable by indicator, entity and period.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ComponentKey, "panel",
//	    log.OperationKey, "harmonize",
//	)
//	logger.Info("merge complete",
//	    log.IndicatorsKey, 4,
//	    log.RowsKey, 12840,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface with leveled methods and
// field chaining. Fields are alternating key-value pairs; an error value
// passed as the first field of Error is attached as the log event's error.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error, it is attached specially so that
	// structured error types marshal their full context.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated on
	// every subsequent log event.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// Level. Unknown names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
