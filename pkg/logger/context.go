package logger

import (
	"context"

	"go.uber.org/zap"
)

// ContextKey is the type for context keys
type ContextKey string

// RequestIDKey is the context key for the per-request correlation ID
const RequestIDKey ContextKey = "request_id"

// WithContext returns a logger enriched with the request ID from ctx, if any.
func WithContext(ctx context.Context, log *zap.Logger) *zap.Logger {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return log.With(zap.String("request_id", requestID))
	}
	return log
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
