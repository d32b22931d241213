package observability

import (
	"log/slog"
	"os"
)

type Logger struct {
	inner *slog.Logger
}

func NewLogger() *Logger {
	return &Logger{inner: slog.New(slog.NewTextHandler(os.Stdout, nil))}
}

func (l *Logger) Info(msg string) {
	l.inner.Info(msg)
}

func (l *Logger) Error(msg string) {
	l.inner.Error(msg)
}
