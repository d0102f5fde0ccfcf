// Package staffdb contains restaurant user related CRUD functionality.
package staffdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
)

const selectUsers = `
	SELECT
		u.restaurant_user_id, u.first_name, u.last_name, u.phone, u.username, u.password_hash,
		u.role, u.restaurant_subdomain, u.active, u.created_at, u.updated_at,
		r.restaurant_id, r.active AS restaurant_active
	FROM
		restaurant_users AS u
	JOIN
		restaurants AS r ON r.subdomain = u.restaurant_subdomain`

// Store manages the set of APIs for restaurant user database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (staffbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new restaurant user into the database.
func (s *Store) Create(ctx context.Context, usr staffbus.User) error {
	const q = `
	INSERT INTO restaurant_users
		(restaurant_user_id, first_name, last_name, phone, username, password_hash, role,
		 restaurant_subdomain, active, created_at, updated_at)
	VALUES
		(:restaurant_user_id, :first_name, :last_name, :phone, :username, :password_hash, :role,
		 :restaurant_subdomain, :active, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBUser(usr)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", staffbus.ErrUniqueUsername)
		}

		var fkErr sqldb.ErrDBForeignKey
		if errors.As(err, &fkErr) {
			return fmt.Errorf("namedexeccontext: %w", staffbus.ErrRestaurantNotFound)
		}

		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of users of one restaurant from the database.
func (s *Store) Query(ctx context.Context, filter staffbus.QueryFilter, orderBy order.By, page page.Page) ([]staffbus.User, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectUsers)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbUsrs []userDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbUsrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusUsers(dbUsrs)
}

// Count returns the total number of users of one restaurant.
func (s *Store) Count(ctx context.Context, filter staffbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		restaurant_users AS u`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified restaurant user from the database.
func (s *Store) QueryByID(ctx context.Context, userID uuid.UUID) (staffbus.User, error) {
	data := struct {
		ID string `db:"restaurant_user_id"`
	}{
		ID: userID.String(),
	}

	q := selectUsers + `
	WHERE
		u.restaurant_user_id = :restaurant_user_id`

	var dbUsr userDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbUsr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return staffbus.User{}, fmt.Errorf("db: %w", staffbus.ErrNotFound)
		}
		return staffbus.User{}, fmt.Errorf("db: %w", err)
	}

	return toBusUser(dbUsr)
}

// QueryByUsername gets the user with the username inside one restaurant.
func (s *Store) QueryByUsername(ctx context.Context, sub subdomain.Subdomain, uname string) (staffbus.User, error) {
	data := struct {
		Subdomain string `db:"restaurant_subdomain"`
		Username  string `db:"username"`
	}{
		Subdomain: sub.String(),
		Username:  uname,
	}

	q := selectUsers + `
	WHERE
		u.restaurant_subdomain = :restaurant_subdomain AND u.username = :username`

	var dbUsr userDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbUsr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return staffbus.User{}, fmt.Errorf("db: %w", staffbus.ErrNotFound)
		}
		return staffbus.User{}, fmt.Errorf("db: %w", err)
	}

	return toBusUser(dbUsr)
}
