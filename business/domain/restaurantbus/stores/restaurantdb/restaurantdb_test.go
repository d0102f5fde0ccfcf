package restaurantdb_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/restaurantbus/stores/restaurantdb"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"restaurant_id", "name", "subdomain", "active", "settings", "created_at", "updated_at"}

func setupMockDB(t *testing.T) (*restaurantdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "TEST", nil)

	return restaurantdb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func testRestaurant() restaurantbus.Restaurant {
	now := time.Now()

	return restaurantbus.Restaurant{
		ID:        uuid.New(),
		Name:      name.MustParse("Acme Grill"),
		Subdomain: subdomain.MustParse("acme"),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func Test_QueryBySubdomain(t *testing.T) {
	store, mock := setupMockDB(t)

	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(columns).
		AddRow(id.String(), "Acme Grill", "acme", true, `{"currency":"BRL"}`, now, now)

	mock.ExpectQuery(`SELECT .+ FROM\s+restaurants\s+WHERE\s+subdomain = \$1`).
		WithArgs("acme").
		WillReturnRows(rows)

	rst, err := store.QueryBySubdomain(context.Background(), subdomain.MustParse("acme"))
	require.NoError(t, err)
	assert.Equal(t, id, rst.ID)
	assert.Equal(t, "Acme Grill", rst.Name.String())
	assert.True(t, rst.Active)
	assert.JSONEq(t, `{"currency":"BRL"}`, string(rst.Settings))

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryByIDNotFound(t *testing.T) {
	store, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(`FROM\s+restaurants`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByID(context.Background(), id)
	require.ErrorIs(t, err, restaurantbus.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_CreateDuplicateSubdomain(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO restaurants`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_restaurants_subdomain"})

	err := store.Create(context.Background(), testRestaurant())
	require.ErrorIs(t, err, restaurantbus.ErrUniqueSubdomain)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_DeleteWithUsers(t *testing.T) {
	store, mock := setupMockDB(t)

	rst := testRestaurant()

	mock.ExpectExec(`DELETE FROM\s+restaurants`).
		WithArgs(rst.ID.String()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_restaurant_users_restaurant"})

	err := store.Delete(context.Background(), rst)
	require.ErrorIs(t, err, restaurantbus.ErrHasUsers)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryPaged(t *testing.T) {
	store, mock := setupMockDB(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.NewString(), "Acme Grill", "acme", true, `{}`, now, now).
		AddRow(uuid.NewString(), "Beta Bistro", "beta", false, `{}`, now, now)

	active := true
	filter := restaurantbus.QueryFilter{Active: &active}

	mock.ExpectQuery(`FROM\s+restaurants WHERE active = \$1 ORDER BY name ASC OFFSET \$2 ROWS FETCH NEXT \$3 ROWS ONLY`).
		WithArgs(true, 20, 20).
		WillReturnRows(rows)

	rsts, err := store.Query(context.Background(), filter, restaurantbus.DefaultOrderBy, page.MustParse("2", "20"))
	require.NoError(t, err)
	require.Len(t, rsts, 2)
	assert.Equal(t, "beta", rsts[1].Subdomain.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_Count(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT\s+count\(1\)\s+FROM\s+restaurants`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := store.Count(context.Background(), restaurantbus.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, mock.ExpectationsWereMet())
}
