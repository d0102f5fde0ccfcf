package staffdb_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/domain/staffbus/stores/staffdb"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/phone"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/business/types/username"
	"github.com/rifuud/api/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"restaurant_user_id", "first_name", "last_name", "phone", "username", "password_hash",
	"role", "restaurant_subdomain", "active", "created_at", "updated_at",
	"restaurant_id", "restaurant_active",
}

func setupMockDB(t *testing.T) (*staffdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "TEST", nil)

	return staffdb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func testUser() staffbus.User {
	now := time.Now()

	return staffbus.User{
		ID:                  uuid.New(),
		FirstName:           name.MustParse("Bob"),
		LastName:            name.MustParse("Stone"),
		Phone:               phone.MustParseNull("+55 11 99999-0000"),
		Username:            username.MustParse("bob"),
		PasswordHash:        "c2FsdA==:ZGlnZXN0",
		Role:                staffrole.MustParseNull("Waiter"),
		RestaurantSubdomain: subdomain.MustParse("acme"),
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func Test_QueryByUsernameScoped(t *testing.T) {
	store, mock := setupMockDB(t)

	id := uuid.New()
	rstID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(columns).
		AddRow(id.String(), "Bob", "Stone", nil, "bob", "c2FsdA==:ZGlnZXN0", nil, "acme", true, now, now, rstID.String(), true)

	mock.ExpectQuery(`JOIN\s+restaurants AS r ON r.subdomain = u.restaurant_subdomain\s+WHERE\s+u.restaurant_subdomain = \$1 AND u.username = \$2`).
		WithArgs("acme", "bob").
		WillReturnRows(rows)

	usr, err := store.QueryByUsername(context.Background(), subdomain.MustParse("acme"), "bob")
	require.NoError(t, err)
	assert.Equal(t, id, usr.ID)
	assert.Equal(t, rstID, usr.RestaurantID)
	assert.True(t, usr.RestaurantActive)
	assert.False(t, usr.Role.Valid())
	assert.False(t, usr.Phone.Valid())

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryByUsernameOtherTenant(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectQuery(`FROM\s+restaurant_users`).
		WithArgs("beta", "bob").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByUsername(context.Background(), subdomain.MustParse("beta"), "bob")
	require.ErrorIs(t, err, staffbus.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_CreateDuplicateUsername(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO restaurant_users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_restaurant_users_subdomain_username"})

	err := store.Create(context.Background(), testUser())
	require.ErrorIs(t, err, staffbus.ErrUniqueUsername)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_CreateUnknownRestaurant(t *testing.T) {
	store, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO restaurant_users`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_restaurant_users_restaurant"})

	err := store.Create(context.Background(), testUser())
	require.ErrorIs(t, err, staffbus.ErrRestaurantNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryAllRestaurants(t *testing.T) {
	store, mock := setupMockDB(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.NewString(), "Ana", "Lima", nil, "ana", "x:y", nil, "acme", true, now, now, uuid.NewString(), true).
		AddRow(uuid.NewString(), "Eve", "Cruz", nil, "eve", "x:y", "Chef", "beta", true, now, now, uuid.NewString(), true)

	mock.ExpectQuery(`restaurant_subdomain\s+ORDER BY u.first_name ASC, u.last_name ASC OFFSET \$1 ROWS FETCH NEXT \$2 ROWS ONLY`).
		WithArgs(0, 10).
		WillReturnRows(rows)

	usrs, err := store.Query(context.Background(), staffbus.QueryFilter{}, staffbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, usrs, 2)
	assert.Equal(t, "beta", usrs[1].RestaurantSubdomain.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryOrderedByName(t *testing.T) {
	store, mock := setupMockDB(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.NewString(), "Ana", "Lima", "+55 11 1234-5678", "ana", "x:y", "Owner", "acme", true, now, now, uuid.NewString(), true)

	mock.ExpectQuery(`WHERE u.restaurant_subdomain = \$1 ORDER BY u.first_name ASC, u.last_name ASC OFFSET \$2 ROWS FETCH NEXT \$3 ROWS ONLY`).
		WithArgs("acme", 0, 10).
		WillReturnRows(rows)

	filter := staffbus.QueryFilter{RestaurantSubdomain: subdomain.MustParse("acme")}

	usrs, err := store.Query(context.Background(), filter, staffbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, usrs, 1)

	role, ok := usrs[0].Role.Role()
	require.True(t, ok)
	assert.Equal(t, "Owner", role.String())
	assert.Equal(t, "+55 11 1234-5678", usrs[0].Phone.String())

	require.NoError(t, mock.ExpectationsWereMet())
}
