package logger

import (
	"context"
	"log/slog"
)

// loggerKey is an unexported context key type to avoid collisions.
type loggerKey struct{}

// WithLogger returns a new context carrying the provided logger. Handlers
// and middleware attach request-scoped attributes (trace ID, user ID) this
// way so lower layers log them without knowing about HTTP.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the logger stored in the context, or the process
// default logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return slog.Default()
}
