// Package logging holds the structured-logging helpers shared by the
// client: a production zap configuration for embedding applications and
// operation-scoped log and error enrichment.
package logging

import (
	"go.uber.org/zap"
)

// NewLogger builds a production ready structured logger suitable for
// passing to cbir.WithLogger.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	return cfg.Build()
}

// WithOperation enriches the logger with operation and request identifiers
// so every round trip can be correlated across log lines.
func WithOperation(logger *zap.Logger, operation, requestID string) *zap.Logger {
	fields := []zap.Field{zap.String("operation", operation)}
	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	return logger.With(fields...)
}
