package postgres

import (
	"context"
	"database/sql"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

const fileColumns = `id, application_id, session_token, category, storage_path,
		filename, size, content_type, created_at`

// FilePostgres is a PostgreSQL implementation of repository.ApplicationFileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.ApplicationFileRepository = (*FilePostgres)(nil)

func scanFile(row interface{ Scan(...any) error }) (*model.ApplicationFile, error) {
	var f model.ApplicationFile
	var applicationID sql.NullString
	if err := row.Scan(
		&f.ID,
		&applicationID,
		&f.SessionToken,
		&f.Category,
		&f.StoragePath,
		&f.Filename,
		&f.Size,
		&f.ContentType,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	f.ApplicationID = applicationID.String
	return &f, nil
}

// Create inserts a file metadata row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, f *model.ApplicationFile) (*model.ApplicationFile, error) {
	q := `
		INSERT INTO application_files (id, application_id, session_token, category,
			storage_path, filename, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		nullString(f.ApplicationID),
		f.SessionToken,
		f.Category,
		f.StoragePath,
		f.Filename,
		f.Size,
		f.ContentType,
		f.CreatedAt,
	)
	out, err := scanFile(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// LinkToApplication attaches all files uploaded under the session token to the
// given application.
func (r *FilePostgres) LinkToApplication(ctx context.Context, sessionToken, applicationID string) (int, error) {
	const q = `
		UPDATE application_files SET application_id = $1
		WHERE session_token = $2 AND application_id IS NULL
	`
	res, err := r.db.ExecContext(ctx, q, applicationID, sessionToken)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// ListByApplication returns file metadata for an application.
func (r *FilePostgres) ListByApplication(ctx context.Context, applicationID string) ([]model.ApplicationFile, error) {
	q := `SELECT ` + fileColumns + ` FROM application_files WHERE application_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]model.ApplicationFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}
