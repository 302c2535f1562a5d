package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey keys context values stored by this package.
type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger stores a logger in the context. A nil logger stores the
// default, so downstream FromContext calls stay total.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in the context, falling back to the
// default logger. Safe on a nil context.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// Ctx is shorthand for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithField returns a context whose logger carries one extra field.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := addField(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithFields returns a context whose logger carries the given fields.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	lctx := FromContext(ctx).With()
	for key, value := range fields {
		lctx = addField(lctx, key, value)
	}
	logger := lctx.Logger()
	return WithLogger(ctx, &logger)
}

// WithMode stamps the acquisition mode onto the context logger, so every
// event from a per-mode merge identifies its polarity.
func WithMode(ctx context.Context, mode string) context.Context {
	return WithField(ctx, "mode", mode)
}

// WithInput stamps the input table kind (intensity, identifications,
// samples) onto the context logger.
func WithInput(ctx context.Context, input string) context.Context {
	return WithField(ctx, "input", input)
}

// WithOperation stamps the pipeline operation onto the context logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}

// WithRunID stores a pipeline run ID in the context and stamps it onto the
// context logger.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return WithField(ctx, "run_id", runID)
}

// RunID returns the pipeline run ID stored in the context, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}
