package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

const uploadErrorColumns = `id, session_token, file_name, error_type, message,
		retryable, resolved, ip, user_agent, created_at`

// UploadErrorPostgres is a PostgreSQL implementation of repository.UploadErrorRepository.
type UploadErrorPostgres struct {
	db *sql.DB
}

// NewUploadErrorPostgres creates a new UploadErrorPostgres repository.
func NewUploadErrorPostgres(db *sql.DB) *UploadErrorPostgres {
	return &UploadErrorPostgres{db: db}
}

var _ repository.UploadErrorRepository = (*UploadErrorPostgres)(nil)

func scanUploadError(row interface{ Scan(...any) error }) (*model.UploadError, error) {
	var e model.UploadError
	var sessionToken sql.NullString
	if err := row.Scan(
		&e.ID,
		&sessionToken,
		&e.FileName,
		&e.ErrorType,
		&e.Message,
		&e.Retryable,
		&e.Resolved,
		&e.IP,
		&e.UserAgent,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.SessionToken = sessionToken.String
	return &e, nil
}

// Create inserts an error record and returns the stored row.
func (r *UploadErrorPostgres) Create(ctx context.Context, e *model.UploadError) (*model.UploadError, error) {
	q := `
		INSERT INTO upload_errors (id, session_token, file_name, error_type, message,
			retryable, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + uploadErrorColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		nullString(e.SessionToken),
		e.FileName,
		e.ErrorType,
		e.Message,
		e.Retryable,
		e.IP,
		e.UserAgent,
		e.CreatedAt,
	)
	return scanUploadError(row)
}

// List returns error records using LIMIT/OFFSET pagination and a total count.
func (r *UploadErrorPostgres) List(ctx context.Context, f repository.UploadErrorFilter, pq repository.PageQuery) (*repository.PageResult[model.UploadError], error) {
	where := []string{"TRUE"}
	args := []any{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if f.ErrorType != "" {
		where = append(where, "error_type = "+next())
		args = append(args, f.ErrorType)
	}
	if f.Retryable != nil {
		where = append(where, "retryable = "+next())
		args = append(args, *f.Retryable)
	}
	if f.Resolved != nil {
		where = append(where, "resolved = "+next())
		args = append(args, *f.Resolved)
	}
	if f.Search != "" {
		p := next()
		where = append(where, "(file_name ILIKE "+p+" OR message ILIKE "+p+")")
		args = append(args, "%"+f.Search+"%")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM upload_errors WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + uploadErrorColumns + ` FROM upload_errors WHERE ` + cond +
		` ORDER BY created_at DESC, id DESC LIMIT ` + next() + ` OFFSET ` + next()
	args = append(args, pq.Limit, pq.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.UploadError, 0)
	for rows.Next() {
		e, err := scanUploadError(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.UploadError]{Items: items, Total: total}, nil
}

// Stats returns grouped counts over the whole log.
func (r *UploadErrorPostgres) Stats(ctx context.Context) (*repository.UploadErrorStats, error) {
	stats := &repository.UploadErrorStats{ByType: make(map[model.UploadErrorType]int)}

	const qTotals = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE resolved = FALSE)
		FROM upload_errors
	`
	if err := r.db.QueryRowContext(ctx, qTotals).Scan(&stats.Total, &stats.Unresolved); err != nil {
		return nil, err
	}

	const qByType = `SELECT error_type, COUNT(*) FROM upload_errors GROUP BY error_type`
	rows, err := r.db.QueryContext(ctx, qByType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var errType model.UploadErrorType
		var count int
		if err := rows.Scan(&errType, &count); err != nil {
			return nil, err
		}
		stats.ByType[errType] = count
	}
	return stats, rows.Err()
}

// SetResolved updates the resolved flag on a single record.
func (r *UploadErrorPostgres) SetResolved(ctx context.Context, id string, resolved bool) error {
	const q = `UPDATE upload_errors SET resolved = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, resolved, id)
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

// ResolveAll marks every unresolved record resolved.
func (r *UploadErrorPostgres) ResolveAll(ctx context.Context) (int, error) {
	const q = `UPDATE upload_errors SET resolved = TRUE WHERE resolved = FALSE`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// Delete removes a record by ID.
func (r *UploadErrorPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM upload_errors WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
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

// DeleteResolved removes all resolved records.
func (r *UploadErrorPostgres) DeleteResolved(ctx context.Context) (int, error) {
	const q = `DELETE FROM upload_errors WHERE resolved = TRUE`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// CountUnresolved counts unresolved records.
func (r *UploadErrorPostgres) CountUnresolved(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM upload_errors WHERE resolved = FALSE`
	var count int
	if err := r.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CleanupStats reports resolved rows created before the cutoff.
func (r *UploadErrorPostgres) CleanupStats(ctx context.Context, cutoff time.Time) (*repository.CleanupStats, error) {
	const q = `
		SELECT COUNT(*), MIN(created_at), MAX(created_at)
		FROM upload_errors
		WHERE resolved = TRUE AND created_at < $1
	`
	var stats repository.CleanupStats
	var oldest, newest sql.NullTime
	if err := r.db.QueryRowContext(ctx, q, cutoff).Scan(&stats.Eligible, &oldest, &newest); err != nil {
		return nil, err
	}
	if oldest.Valid {
		stats.Oldest = &oldest.Time
	}
	if newest.Valid {
		stats.Newest = &newest.Time
	}
	return &stats, nil
}

// DeleteResolvedBefore permanently removes up to limit resolved rows created before the cutoff.
func (r *UploadErrorPostgres) DeleteResolvedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	const q = `
		DELETE FROM upload_errors
		WHERE id IN (
			SELECT id FROM upload_errors
			WHERE resolved = TRUE AND created_at < $1
			ORDER BY created_at ASC
			LIMIT $2
		)
	`
	res, err := r.db.ExecContext(ctx, q, cutoff, limit)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
