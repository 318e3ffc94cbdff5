package service

import (
	"context"
	"log/slog"

	"todo_api/internal/logger"

	"github.com/google/uuid"
)

// AuditService records task mutations as structured log entries
type AuditService struct {
	log *slog.Logger
}

func NewAuditService() *AuditService {
	return &AuditService{log: logger.With("component", "audit")}
}

// NewAuditServiceWithLogger is used by tests to capture entries.
func NewAuditServiceWithLogger(l *slog.Logger) *AuditService {
	return &AuditService{log: l}
}

// Log writes one audit entry and counts the action.
func (s *AuditService) Log(ctx context.Context, action string, taskID uuid.UUID, details map[string]any) {
	TaskOperations.WithLabelValues(action).Inc()

	args := []any{"action", action}
	if taskID != uuid.Nil {
		args = append(args, "task_id", taskID.String())
	}
	for k, v := range details {
		args = append(args, k, v)
	}
	s.log.InfoContext(ctx, "task audit", args...)
}
