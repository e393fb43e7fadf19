package postgres

import (
	"context"
	"database/sql"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// FindByAuthID returns the non-deleted profile joined to the external identity subject.
func (r *UserPostgres) FindByAuthID(ctx context.Context, authID string) (*model.User, error) {
	const q = `
		SELECT id, auth_id, email, name, type, deleted_at, created_at, updated_at
		FROM users
		WHERE auth_id = $1 AND deleted_at IS NULL
	`
	row := r.db.QueryRowContext(ctx, q, authID)
	var u model.User
	var deletedAt sql.NullTime
	if err := row.Scan(
		&u.ID,
		&u.AuthID,
		&u.Email,
		&u.Name,
		&u.Type,
		&deletedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return &u, nil
}
