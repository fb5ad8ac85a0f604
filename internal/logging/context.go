package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context.
// If no logger is found, returns a disabled logger (no-op).
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithKeyMapID creates a child logger with a keymap_id field
func WithKeyMapID(ctx context.Context, keyMapID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("keymap_id", keyMapID).Logger()
	return WithContext(ctx, childLogger)
}

// WithDevice creates a child logger with a device field
func WithDevice(ctx context.Context, device string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("device", device).Logger()
	return WithContext(ctx, childLogger)
}
