package postgres

import (
	"context"
	"database/sql"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// AuditPostgres is a PostgreSQL implementation of repository.AuditRepository.
type AuditPostgres struct {
	db *sql.DB
}

// NewAuditPostgres creates a new AuditPostgres repository.
func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

// Create appends an audit entry and returns the stored row.
func (r *AuditPostgres) Create(ctx context.Context, a *model.AuditLog) (*model.AuditLog, error) {
	const q = `
		INSERT INTO audit_logs (id, actor_id, actor_type, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, actor_id, actor_type, action, detail, created_at
	`
	detail := a.Detail
	if len(detail) == 0 {
		detail = []byte(`{}`)
	}
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.ActorID,
		a.ActorType,
		a.Action,
		[]byte(detail),
		a.CreatedAt,
	)
	var out model.AuditLog
	var rawDetail []byte
	if err := row.Scan(
		&out.ID,
		&out.ActorID,
		&out.ActorType,
		&out.Action,
		&rawDetail,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	out.Detail = rawDetail
	return &out, nil
}

// CountByAction counts entries with the given action since the given time.
func (r *AuditPostgres) CountByAction(ctx context.Context, action string, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM audit_logs WHERE action = $1 AND created_at >= $2`
	var count int
	if err := r.db.QueryRowContext(ctx, q, action, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
