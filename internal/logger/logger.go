package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the logging surface used across promptkit. It wraps slog so
// commands and tests can inject their own handlers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// New creates a Logger backed by the given handler.
func New(handler slog.Handler) Logger {
	return &slogLogger{logger: slog.New(handler)}
}

// Default creates a text Logger on stderr at info level.
func Default() Logger {
	return New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// JSON creates a JSON Logger for service use.
func JSON(w io.Writer, level slog.Level) Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Text creates a text Logger at the given level.
func Text(w io.Writer, level slog.Level) Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

type loggerKey struct{}

// FromContext retrieves the Logger stored in ctx, or a default one.
func FromContext(ctx context.Context) Logger {
	if log, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return log
	}
	return Default()
}

// WithContext stores the logger in the context.
func WithContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// ParseLevel converts a string level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
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
