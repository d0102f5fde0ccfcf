package admindb_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/adminbus/stores/admindb"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/username"
	"github.com/rifuud/api/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*admindb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "TEST", nil)

	return admindb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func Test_QueryByUsername(t *testing.T) {
	store, mock := setupMockDB(t)

	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"admin_user_id", "username", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(id.String(), "root", "c2FsdA==:ZGlnZXN0", "Root", now, now)

	mock.ExpectQuery(`SELECT .+ FROM\s+admin_users\s+WHERE\s+username = \$1`).
		WithArgs("root").
		WillReturnRows(rows)

	usr, err := store.QueryByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, id, usr.ID)
	assert.True(t, usr.Role.Equal(adminrole.Root))
	assert.Equal(t, "c2FsdA==:ZGlnZXN0", usr.PasswordHash)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryByUsernameNotFound(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery(`FROM\s+admin_users`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"admin_user_id"}))

	_, err := store.QueryByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, adminbus.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_CreateDuplicate(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO admin_users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_admin_users_username"})

	now := time.Now()
	err := store.Create(context.Background(), adminbus.User{
		ID:           uuid.New(),
		Username:     username.MustParse("alice"),
		PasswordHash: "x:y",
		Role:         adminrole.Admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.ErrorIs(t, err, adminbus.ErrUniqueUsername)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_CreateSecondRoot(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO admin_users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_admin_users_root"})

	now := time.Now()
	err := store.Create(context.Background(), adminbus.User{
		ID:           uuid.New(),
		Username:     username.MustParse("root2"),
		PasswordHash: "x:y",
		Role:         adminrole.Root,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.ErrorIs(t, err, adminbus.ErrRootExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_CountByRole(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT\s+count\(1\)`).
		WithArgs("Root").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := store.CountByRole(context.Background(), adminrole.Root)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, mock.ExpectationsWereMet())
}
