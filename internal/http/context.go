package http

import (
	"context"
	"log/slog"

	"github.com/example/workinghours/internal/logging"
)

type contextKey string

const regionCodeContextKey contextKey = "region_code"

// ContextWithRegionCode injects the region code resolved from the request path.
func ContextWithRegionCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, regionCodeContextKey, code)
}

// RegionCodeFromContext extracts a region code previously associated with the context.
func RegionCodeFromContext(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(regionCodeContextKey).(string)
	return code, ok
}

// ContextWithLogger attaches a request-scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts the request-scoped logger if one was attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
