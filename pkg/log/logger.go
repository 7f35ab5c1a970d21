package log

import (
	"log/slog"
	"os"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Output formats understood by SetupLogger.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatCloud   = "cloud"
)

// SetupLogger installs the process-wide logger.
//
// "console" and "json" use zerolog on stderr. "cloud" emits Cloud Logging
// shaped JSON through log/slog on stdout, with stack traces extracted from
// cockroachdb/errors values by ErrFmtHandler; it also becomes slog's default.
func SetupLogger(loglevel, format string) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}

	switch format {
	case FormatConsole:
		SetLogger(NewConsoleLogger(os.Stderr, level))
	case FormatJSON:
		SetLogger(NewZerologLogger(os.Stderr, level))
	case FormatCloud:
		ops := slog.HandlerOptions{
			AddSource: true,
			Level:     slog.Level(level),
			// Replace attributes to convert to CloudLogging format.
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				switch attr.Key {
				case slog.LevelKey:
					attr = slog.Attr{Key: "severity", Value: attr.Value}
				case slog.MessageKey:
					attr = slog.Attr{Key: "message", Value: attr.Value}
				case slog.SourceKey:
					attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
				}
				return attr
			},
		}
		handler := WrapByErrFmtHandler(slog.NewJSONHandler(os.Stdout, &ops))
		slog.SetDefault(slog.New(handler))
		SetLogger(NewSlogLogger(handler))
	default:
		return scierrors.NewValidationError("log_format", "must be one of console, json, cloud", format)
	}
	return nil
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, scierrors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
