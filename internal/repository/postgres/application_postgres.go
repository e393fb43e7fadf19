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

const applicationColumns = `id, session_token, first_name, last_name, email, phone,
		position, address, education, work_experience, skills, status,
		deleted_at, created_at, updated_at`

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

func scanApplication(row interface{ Scan(...any) error }) (*model.JobApplication, error) {
	var a model.JobApplication
	var sessionToken sql.NullString
	var deletedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&sessionToken,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.Position,
		&a.Address,
		&a.Education,
		&a.WorkExperience,
		&a.Skills,
		&a.Status,
		&deletedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.SessionToken = sessionToken.String
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return &a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create inserts a new application row and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, a *model.JobApplication) (*model.JobApplication, error) {
	q := `
		INSERT INTO job_applications (id, session_token, first_name, last_name, email,
			phone, position, address, education, work_experience, skills, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + applicationColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		nullString(a.SessionToken),
		a.FirstName,
		a.LastName,
		a.Email,
		a.Phone,
		a.Position,
		a.Address,
		a.Education,
		a.WorkExperience,
		a.Skills,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)
	out, err := scanApplication(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByID fetches a single non-deleted application by ID.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.JobApplication, error) {
	q := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id = $1 AND deleted_at IS NULL`
	return scanApplication(r.db.QueryRowContext(ctx, q, id))
}

// List returns applications using LIMIT/OFFSET pagination and a total count.
func (r *ApplicationPostgres) List(ctx context.Context, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.JobApplication], error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if f.Status != "" {
		where = append(where, "status = "+next())
		args = append(args, f.Status)
	}
	if f.Position != "" {
		where = append(where, "position = "+next())
		args = append(args, f.Position)
	}
	if f.Search != "" {
		p := next()
		where = append(where, "(first_name ILIKE "+p+" OR last_name ILIKE "+p+" OR email ILIKE "+p+")")
		args = append(args, "%"+f.Search+"%")
	}
	if !f.Since.IsZero() {
		where = append(where, "created_at >= "+next())
		args = append(args, f.Since)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_applications WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + applicationColumns + ` FROM job_applications WHERE ` + cond +
		` ORDER BY created_at DESC, id DESC LIMIT ` + next() + ` OFFSET ` + next()
	args = append(args, pq.Limit, pq.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.JobApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.JobApplication]{Items: items, Total: total}, nil
}

// UpdateStatus sets the review status and returns the updated row.
func (r *ApplicationPostgres) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.JobApplication, error) {
	q := `
		UPDATE job_applications SET status = $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRowContext(ctx, q, status, id))
}

// SoftDelete stamps deleted_at on a non-deleted application.
func (r *ApplicationPostgres) SoftDelete(ctx context.Context, id string, at time.Time) error {
	const q = `
		UPDATE job_applications SET deleted_at = $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, q, at, id)
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

// Restore clears deleted_at on a soft-deleted application.
func (r *ApplicationPostgres) Restore(ctx context.Context, id string) error {
	const q = `
		UPDATE job_applications SET deleted_at = NULL, updated_at = now()
		WHERE id = $1 AND deleted_at IS NOT NULL
	`
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

// CountByStatus returns application counts grouped by status since the given time.
func (r *ApplicationPostgres) CountByStatus(ctx context.Context, since time.Time) (map[model.ApplicationStatus]int, error) {
	const q = `
		SELECT status, COUNT(*) FROM job_applications
		WHERE deleted_at IS NULL AND created_at >= $1
		GROUP BY status
	`
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ApplicationStatus]int)
	for rows.Next() {
		var status model.ApplicationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CountSoftDeleted returns total soft-deleted rows and those older than the cutoff.
func (r *ApplicationPostgres) CountSoftDeleted(ctx context.Context, cutoff time.Time) (int, int, error) {
	const q = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE deleted_at < $1)
		FROM job_applications
		WHERE deleted_at IS NOT NULL
	`
	var total, overdue int
	if err := r.db.QueryRowContext(ctx, q, cutoff).Scan(&total, &overdue); err != nil {
		return 0, 0, err
	}
	return total, overdue, nil
}

// CountSoftDeletedSince returns soft-deletions stamped within the window.
func (r *ApplicationPostgres) CountSoftDeletedSince(ctx context.Context, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM job_applications WHERE deleted_at >= $1`
	var count int
	if err := r.db.QueryRowContext(ctx, q, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CleanupStats reports rows soft-deleted before the cutoff.
func (r *ApplicationPostgres) CleanupStats(ctx context.Context, cutoff time.Time) (*repository.CleanupStats, error) {
	const q = `
		SELECT COUNT(*), MIN(deleted_at), MAX(deleted_at)
		FROM job_applications
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
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

// DeleteSoftDeletedBefore permanently removes up to limit rows soft-deleted before the cutoff.
func (r *ApplicationPostgres) DeleteSoftDeletedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	const q = `
		DELETE FROM job_applications
		WHERE id IN (
			SELECT id FROM job_applications
			WHERE deleted_at IS NOT NULL AND deleted_at < $1
			ORDER BY deleted_at ASC
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
