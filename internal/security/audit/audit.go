package audit

import (
	"context"
	"log/slog"
	"time"
)

// Logger writes structured audit entries for admin actions on candidate
// records. Entries go to the application log stream tagged "audit" so
// they can be filtered downstream.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// RequestIDKey is the context key under which the HTTP layer stores the
// request ID.
type RequestIDKey struct{}

func (al *Logger) LogAction(ctx context.Context, adminEmail, action, resource, resourceID, status, details string) {
	requestID := ""
	if reqID, ok := ctx.Value(RequestIDKey{}).(string); ok {
		requestID = reqID
	}

	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("admin", adminEmail),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", requestID),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogStageChange(ctx context.Context, adminEmail, candidateID, fromStage, toStage string) {
	al.LogAction(ctx, adminEmail, "stage_change", "candidate", candidateID, "applied", fromStage+" -> "+toStage)
}

func (al *Logger) LogDeletion(ctx context.Context, adminEmail, candidateID, status, details string) {
	al.LogAction(ctx, adminEmail, "delete", "candidate", candidateID, status, details)
}

func (al *Logger) LogDenied(ctx context.Context, adminEmail, reason string) {
	al.LogAction(ctx, adminEmail, "access_denied", "api", "", "denied", reason)
}
