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

var applicationCols = []string{
	"id", "session_token", "first_name", "last_name", "email", "phone",
	"position", "address", "education", "work_experience", "skills", "status",
	"deleted_at", "created_at", "updated_at",
}

func applicationRow(a *model.JobApplication) *sqlmock.Rows {
	return sqlmock.NewRows(applicationCols).AddRow(
		a.ID, a.SessionToken, a.FirstName, a.LastName, a.Email, a.Phone,
		a.Position, a.Address, a.Education, a.WorkExperience, a.Skills, a.Status,
		nil, a.CreatedAt, a.UpdatedAt,
	)
}

func sampleApplication() *model.JobApplication {
	now := time.Now().UTC()
	return &model.JobApplication{
		ID:        "app-uuid",
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
		Position:  "driver",
		Status:    model.ApplicationStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestApplicationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)

	mock.ExpectQuery("INSERT INTO job_applications").
		WillReturnRows(applicationRow(sampleApplication()))

	result, err := repo.Create(context.Background(), sampleApplication())

	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationPostgres_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM job_applications WHERE id = ").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestApplicationPostgres_List_StatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM job_applications").
		WithArgs(model.ApplicationStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM job_applications WHERE (.+) ORDER BY").
		WithArgs(model.ApplicationStatusPending, 10, 0).
		WillReturnRows(applicationRow(sampleApplication()))

	res, err := repo.List(context.Background(),
		repository.ApplicationFilter{Status: model.ApplicationStatusPending},
		repository.FromPage(1, 10))

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestApplicationPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	a := sampleApplication()
	a.Status = model.ApplicationStatusApproved

	mock.ExpectQuery("UPDATE job_applications SET status").
		WithArgs(model.ApplicationStatusApproved, "app-uuid").
		WillReturnRows(applicationRow(a))

	updated, err := repo.UpdateStatus(context.Background(), "app-uuid", model.ApplicationStatusApproved)

	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApproved, updated.Status)
}

func TestApplicationPostgres_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	at := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE job_applications SET deleted_at").
			WithArgs(at, "app-uuid").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(context.Background(), "app-uuid", at))
	})

	t.Run("already deleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE job_applications SET deleted_at").
			WithArgs(at, "app-uuid").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SoftDelete(context.Background(), "app-uuid", at)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestApplicationPostgres_Restore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)

	mock.ExpectExec("UPDATE job_applications SET deleted_at = NULL").
		WithArgs("app-uuid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Restore(context.Background(), "app-uuid"))
}

func TestApplicationPostgres_CleanupStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	oldest := cutoff.Add(-60 * 24 * time.Hour)
	newest := cutoff.Add(-24 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), MIN\\(deleted_at\\), MAX\\(deleted_at\\)").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"count", "min", "max"}).AddRow(7, oldest, newest))

	stats, err := repo.CleanupStats(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, 7, stats.Eligible)
	require.NotNil(t, stats.Oldest)
	assert.Equal(t, oldest, *stats.Oldest)
}

func TestApplicationPostgres_CleanupStats_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	cutoff := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), MIN\\(deleted_at\\), MAX\\(deleted_at\\)").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"count", "min", "max"}).AddRow(0, nil, nil))

	stats, err := repo.CleanupStats(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.Eligible)
	assert.Nil(t, stats.Oldest)
	assert.Nil(t, stats.Newest)
}

func TestApplicationPostgres_DeleteSoftDeletedBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	cutoff := time.Now().Add(-90 * 24 * time.Hour)

	mock.ExpectExec("DELETE FROM job_applications").
		WithArgs(cutoff, 100).
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteSoftDeletedBefore(context.Background(), cutoff, 100)

	assert.NoError(t, err)
	assert.Equal(t, 7, deleted)
}

func TestApplicationPostgres_CountSoftDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	cutoff := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COUNT\\(\\*\\) FILTER").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"total", "overdue"}).AddRow(10, 3))

	total, overdue, err := repo.CountSoftDeleted(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 3, overdue)
}
