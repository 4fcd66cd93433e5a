package utils

import (
	"context"
	"strings"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
)

type requestIDKey struct{}

// WithRequestID carries the request id down to services.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogEvent writes a standardized business event with module/action/request_id.
// Avoid logging sensitive payload; kv should be ids and counts.
func LogEvent(requestID, module, action string, kv ...any) {
	fields := append([]any{
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
	}, kv...)
	logger.Info(module+" "+action, fields...)
}
