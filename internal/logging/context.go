package logging

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// CtxWithFields returns a copy of ctx whose logger carries keyvals.
func CtxWithFields(ctx context.Context, keyvals ...any) context.Context {
	return log.WithContext(ctx, FromCtx(ctx).With(keyvals...))
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return log.WithContext(ctx, logger)
}

// FromCtx returns the logger stored in ctx, or the default logger.
func FromCtx(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}

// WrapErr logs err at debug level and wraps it with msg.
// Errors are reported once, by the caller that decides they are fatal.
func WrapErr(logger *log.Logger, err error, msg string) error {
	logger.Debug(msg, "error", err)
	return fmt.Errorf("%s: %w", msg, err)
}
