package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// SnapshotIDKey is the context key for the snapshot being compiled
	SnapshotIDKey contextKey = "snapshot_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithSnapshotID tags the context and logger with the snapshot a document
// is compiled from.
func WithSnapshotID(ctx context.Context, logger *zap.Logger, snapshotID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, SnapshotIDKey, snapshotID)
	enriched := logger.With(zap.String("snapshot_id", snapshotID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetSnapshotID retrieves snapshot ID from context
func GetSnapshotID(ctx context.Context) string {
	if id, ok := ctx.Value(SnapshotIDKey).(string); ok {
		return id
	}
	return ""
}
