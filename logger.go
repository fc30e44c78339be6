package ecs

import (
	"context"
	"log/slog"
)

// NewSlogLogger adapts a slog.Logger to the Logger interface.
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return noopLogger{}
	}
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) With(key string, value any) Logger {
	return slogLogger{logger: l.logger.With(key, value)}
}

func (l slogLogger) Info(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

func (l slogLogger) Error(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelError, msg, args...)
}

// noopLogger is used until a real logger is supplied.
type noopLogger struct{}

func (noopLogger) With(string, any) Logger { return noopLogger{} }
func (noopLogger) Info(string, ...any)     {}
func (noopLogger) Error(string, ...any)    {}
