package repository

import (
	"context"
	"time"

	"caterapi/internal/model"
)

// AuditRepository defines data access for the append-only audit log.
type AuditRepository interface {
	// Create appends an audit entry and returns the stored row.
	Create(ctx context.Context, a *model.AuditLog) (*model.AuditLog, error)

	// CountByAction counts entries with the given action since the given time.
	CountByAction(ctx context.Context, action string, since time.Time) (int, error)
}
