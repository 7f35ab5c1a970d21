// Package log provides a structured logging interface for scitree operations.
//
// The interface is a minimal, slog-compatible surface so that the tree
// builder, the pruner and the command line tool can log without caring which
// backend is installed. Two backends ship with the package: a zerolog logger
// (the default) and an adapter over any log/slog handler.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("tree.builder").With(
//	    log.ModelNameKey, "DecisionTreeClassifier",
//	)
//	logger.Info("Tree built",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.TreeDepthKey, 7,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Every method takes a message followed by alternating key/value pairs.
// With returns a child logger that carries the given fields on every
// subsequent record.
type Logger interface {
	// Debug logs detailed diagnostic information, such as every split the
	// builder accepts. Usually disabled outside of development.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs situations that are suspicious but do not stop the operation.
	Warn(msg string, fields ...any)

	// Error logs an error condition. An error value passed under the "error"
	// key is rendered with its message (and stack trace by backends that
	// support it).
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip building expensive fields:
	//
	//	if logger.Enabled(ctx, LevelDebug) {
	//	    logger.Debug("Tree dump", "tree", root.String())
	//	}
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
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

// LoggerProvider defines an interface for creating and configuring loggers.
// This interface allows for dependency injection and testing with different
// logger implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
