package postgres

import (
	"context"
	"database/sql"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

const sessionColumns = `id, token, first_name, last_name, email, phone, ip,
		upload_count, max_uploads, completed, expires_at, created_at`

// SessionPostgres is a PostgreSQL implementation of repository.SessionRepository.
type SessionPostgres struct {
	db *sql.DB
}

// NewSessionPostgres creates a new SessionPostgres repository.
func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

var _ repository.SessionRepository = (*SessionPostgres)(nil)

func scanSession(row interface{ Scan(...any) error }) (*model.ApplicationSession, error) {
	var s model.ApplicationSession
	if err := row.Scan(
		&s.ID,
		&s.Token,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.Phone,
		&s.IP,
		&s.UploadCount,
		&s.MaxUploads,
		&s.Completed,
		&s.ExpiresAt,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new session row and returns the stored record.
func (r *SessionPostgres) Create(ctx context.Context, s *model.ApplicationSession) (*model.ApplicationSession, error) {
	q := `
		INSERT INTO application_sessions (id, token, first_name, last_name, email,
			phone, ip, max_uploads, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + sessionColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.Token,
		s.FirstName,
		s.LastName,
		s.Email,
		s.Phone,
		s.IP,
		s.MaxUploads,
		s.ExpiresAt,
		s.CreatedAt,
	)
	out, err := scanSession(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByToken fetches a session by its token.
func (r *SessionPostgres) FindByToken(ctx context.Context, token string) (*model.ApplicationSession, error) {
	q := `SELECT ` + sessionColumns + ` FROM application_sessions WHERE token = $1`
	return scanSession(r.db.QueryRowContext(ctx, q, token))
}

// CountByIPSince counts sessions created from the IP after the given time.
func (r *SessionPostgres) CountByIPSince(ctx context.Context, ip string, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM application_sessions WHERE ip = $1 AND created_at >= $2`
	var count int
	if err := r.db.QueryRowContext(ctx, q, ip, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementUploadCount bumps upload_count by one.
func (r *SessionPostgres) IncrementUploadCount(ctx context.Context, token string) error {
	const q = `UPDATE application_sessions SET upload_count = upload_count + 1 WHERE token = $1`
	res, err := r.db.ExecContext(ctx, q, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkCompleted flags the session as completed.
func (r *SessionPostgres) MarkCompleted(ctx context.Context, token string) error {
	const q = `UPDATE application_sessions SET completed = TRUE WHERE token = $1`
	res, err := r.db.ExecContext(ctx, q, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountExpiredIncomplete counts sessions that expired after the given time
// without being completed.
func (r *SessionPostgres) CountExpiredIncomplete(ctx context.Context, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*) FROM application_sessions
		WHERE completed = FALSE AND expires_at < now() AND expires_at >= $1
	`
	var count int
	if err := r.db.QueryRowContext(ctx, q, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
