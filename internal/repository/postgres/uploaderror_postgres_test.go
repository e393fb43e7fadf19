package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"caterapi/internal/model"
	"caterapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uploadErrorCols = []string{
	"id", "session_token", "file_name", "error_type", "message",
	"retryable", "resolved", "ip", "user_agent", "created_at",
}

func uploadErrorRow(e *model.UploadError) *sqlmock.Rows {
	return sqlmock.NewRows(uploadErrorCols).AddRow(
		e.ID, e.SessionToken, e.FileName, e.ErrorType, e.Message,
		e.Retryable, e.Resolved, e.IP, e.UserAgent, e.CreatedAt,
	)
}

func sampleUploadError() *model.UploadError {
	return &model.UploadError{
		ID:        "err-uuid",
		FileName:  "resume.pdf",
		ErrorType: model.UploadErrorStorage,
		Message:   "bucket write timed out",
		Retryable: true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestUploadErrorPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadErrorPostgres(db)

	mock.ExpectQuery("INSERT INTO upload_errors").
		WillReturnRows(uploadErrorRow(sampleUploadError()))

	result, err := repo.Create(context.Background(), sampleUploadError())

	assert.NoError(t, err)
	assert.Equal(t, model.UploadErrorStorage, result.ErrorType)
}

func TestUploadErrorPostgres_List_TriStateFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadErrorPostgres(db)
	retryable := true
	resolved := false

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM upload_errors").
		WithArgs(model.UploadErrorStorage, true, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM upload_errors WHERE (.+) ORDER BY").
		WithArgs(model.UploadErrorStorage, true, false, 10, 0).
		WillReturnRows(uploadErrorRow(sampleUploadError()))

	f := repository.UploadErrorFilter{
		ErrorType: model.UploadErrorStorage,
		Retryable: &retryable,
		Resolved:  &resolved,
	}
	res, err := repo.List(context.Background(), f, repository.FromPage(1, 10))

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadErrorPostgres_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadErrorPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COUNT\\(\\*\\) FILTER").
		WillReturnRows(sqlmock.NewRows([]string{"total", "unresolved"}).AddRow(12, 4))
	mock.ExpectQuery("SELECT error_type, COUNT\\(\\*\\) FROM upload_errors").
		WillReturnRows(sqlmock.NewRows([]string{"error_type", "count"}).
			AddRow("storage", 8).
			AddRow("validation", 4))

	stats, err := repo.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 12, stats.Total)
	assert.Equal(t, 4, stats.Unresolved)
	assert.Equal(t, 8, stats.ByType[model.UploadErrorStorage])
}

func TestUploadErrorPostgres_SetResolved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadErrorPostgres(db)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE upload_errors SET resolved").
			WithArgs(true, "err-uuid").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetResolved(context.Background(), "err-uuid", true))
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE upload_errors SET resolved").
			WithArgs(true, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetResolved(context.Background(), "missing", true)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUploadErrorPostgres_ResolveAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadErrorPostgres(db)

	mock.ExpectExec("UPDATE upload_errors SET resolved = TRUE WHERE resolved = FALSE").
		WillReturnResult(sqlmock.NewResult(0, 6))

	count, err := repo.ResolveAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestUploadErrorPostgres_DeleteResolvedBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUploadErrorPostgres(db)
	cutoff := time.Now().Add(-90 * 24 * time.Hour)

	mock.ExpectExec("DELETE FROM upload_errors").
		WithArgs(cutoff, 100).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteResolvedBefore(context.Background(), cutoff, 100)

	assert.NoError(t, err)
	assert.Equal(t, 3, deleted)
}
