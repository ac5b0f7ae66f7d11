package contextkeys

import (
	"context"

	"listings-service/internal/core/port"
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// ContextWithLogger stores a request-scoped logger in the context.
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the request-scoped logger. Callers outside a
// request (tests, startup) get a no-op logger instead of a nil check.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok {
		return logger
	}
	return &noopLogger{}
}

type noopLogger struct{}

func (n *noopLogger) Debug(msg string, fields port.Fields)             {}
func (n *noopLogger) Info(msg string, fields port.Fields)              {}
func (n *noopLogger) Warn(msg string, fields port.Fields)              {}
func (n *noopLogger) Error(msg string, err error, fields port.Fields)  {}
func (n *noopLogger) WithFields(fields port.Fields) port.LoggerPort    { return n }
