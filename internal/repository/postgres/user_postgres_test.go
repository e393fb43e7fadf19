package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"caterapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPostgres_FindByAuthID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE auth_id = ").
			WithArgs("auth-subject").
			WillReturnRows(sqlmock.NewRows([]string{"id", "auth_id", "email", "name", "type", "deleted_at", "created_at", "updated_at"}).
				AddRow("user-uuid", "auth-subject", "ops@example.com", "Ops Admin", "ADMIN", nil, now, now))

		u, err := repo.FindByAuthID(context.Background(), "auth-subject")

		assert.NoError(t, err)
		assert.Equal(t, model.UserTypeAdmin, u.Type)
		assert.Nil(t, u.DeletedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE auth_id = ").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByAuthID(context.Background(), "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
