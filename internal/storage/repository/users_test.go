package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password", "created_at", "updated_at", "deleted_at"}

func newRepoWithMock(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	storage, err := NewWithDB(db, DefaultSchema)
	require.NoError(t, err)
	return storage, mock
}

func TestStorage_FindByEmail(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.NewString()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					`SELECT id, email, password, created_at, updated_at, deleted_at FROM users WHERE email = $1 AND deleted_at IS NULL`)).
					WithArgs("a@test.com").
					WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id, "a@test.com", "hash", now, now, nil))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
					WithArgs("a@test.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
					WithArgs("a@test.com").
					WillReturnError(errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, mock := newRepoWithMock(t)
			tt.setup(mock)

			got, err := storage.FindByEmail(context.Background(), "a@test.com")
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.name == "db error":
				require.Error(t, err)
				assert.Contains(t, err.Error(), "storage.FindByEmail")
				assert.NotErrorIs(t, err, ErrUserNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)
				assert.Equal(t, "a@test.com", got.Email)
				assert.Equal(t, "hash", got.PasswordHash)
				assert.Equal(t, now, got.CreatedAt)
				assert.Nil(t, got.DeletedAt)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStorage_FindByID(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT id, email, password, created_at, updated_at, deleted_at FROM users WHERE id = $1 AND deleted_at IS NULL`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id, "a@test.com", "hash", now, now, nil))

		got, err := storage.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := storage.FindByID(context.Background(), id)
		require.ErrorIs(t, err, ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id skips query", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)

		_, err := storage.FindByID(context.Background(), "not-a-uuid")
		require.ErrorIs(t, err, ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled context", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.FindByID(ctx, id)
		require.ErrorIs(t, err, context.Canceled)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorage_Create(t *testing.T) {
	insert := regexp.QuoteMeta(
		`INSERT INTO users (id, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`)

	t.Run("success", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		mock.ExpectExec(insert).
			WithArgs(sqlmock.AnyArg(), "a@test.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := storage.Create(context.Background(), "a@test.com", "hash")
		require.NoError(t, err)

		_, err = uuid.Parse(got.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@test.com", got.Email)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.False(t, got.CreatedAt.IsZero())
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		mock.ExpectExec(insert).
			WithArgs(sqlmock.AnyArg(), "a@test.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		_, err := storage.Create(context.Background(), "a@test.com", "hash")
		require.ErrorIs(t, err, ErrUserExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		mock.ExpectExec(insert).
			WithArgs(sqlmock.AnyArg(), "a@test.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errors.New("db down"))

		_, err := storage.Create(context.Background(), "a@test.com", "hash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserExists)
		assert.Contains(t, err.Error(), "db down")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorage_Delete(t *testing.T) {
	id := uuid.NewString()
	update := regexp.QuoteMeta(
		`UPDATE users SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`)

	t.Run("success", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		mock.ExpectExec(update).
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, storage.Delete(context.Background(), id))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted", func(t *testing.T) {
		storage, mock := newRepoWithMock(t)
		mock.ExpectExec(update).
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, storage.Delete(context.Background(), id), ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSchema_Validate(t *testing.T) {
	require.NoError(t, DefaultSchema.Validate())

	bad := DefaultSchema
	bad.Table = "users; DROP TABLE users"
	require.Error(t, bad.Validate())

	empty := DefaultSchema
	empty.EmailColumn = ""
	require.Error(t, empty.Validate())

	_, err := NewWithDB(nil, bad)
	require.Error(t, err)
}

func TestBuildQueries_CustomSchema(t *testing.T) {
	s := DefaultSchema
	s.Table = "accounts"
	s.PasswordColumn = "password_hash"

	q := buildQueries(s)
	assert.Equal(t,
		`SELECT id, email, password_hash, created_at, updated_at, deleted_at FROM accounts WHERE email = $1 AND deleted_at IS NULL`,
		q.selectByEmail)
	assert.Equal(t,
		`INSERT INTO accounts (id, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		q.insert)
}
