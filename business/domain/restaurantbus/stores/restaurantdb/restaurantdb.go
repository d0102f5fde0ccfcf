// Package restaurantdb contains restaurant related CRUD functionality.
package restaurantdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
)

// Store manages the set of APIs for restaurant database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (restaurantbus.Storer, error) {
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

// Create inserts a new restaurant into the database.
func (s *Store) Create(ctx context.Context, rst restaurantbus.Restaurant) error {
	const q = `
	INSERT INTO restaurants
		(restaurant_id, name, subdomain, active, settings, created_at, updated_at)
	VALUES
		(:restaurant_id, :name, :subdomain, :active, :settings, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRestaurant(rst)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", restaurantbus.ErrUniqueSubdomain)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a restaurant document in the database.
func (s *Store) Update(ctx context.Context, rst restaurantbus.Restaurant) error {
	const q = `
	UPDATE
		restaurants
	SET
		name = :name,
		active = :active,
		settings = :settings,
		updated_at = :updated_at
	WHERE
		restaurant_id = :restaurant_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRestaurant(rst)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a restaurant from the database. Restaurant users reference
// the subdomain with ON DELETE RESTRICT.
func (s *Store) Delete(ctx context.Context, rst restaurantbus.Restaurant) error {
	const q = `
	DELETE FROM
		restaurants
	WHERE
		restaurant_id = :restaurant_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRestaurant(rst)); err != nil {
		var fkErr sqldb.ErrDBForeignKey
		if errors.As(err, &fkErr) {
			return fmt.Errorf("namedexeccontext: %w", restaurantbus.ErrHasUsers)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing restaurants from the database.
func (s *Store) Query(ctx context.Context, filter restaurantbus.QueryFilter, orderBy order.By, page page.Page) ([]restaurantbus.Restaurant, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		restaurant_id, name, subdomain, active, settings, created_at, updated_at
	FROM
		restaurants`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbRsts []restaurantDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbRsts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusRestaurants(dbRsts)
}

// Count returns the total number of restaurants in the DB.
func (s *Store) Count(ctx context.Context, filter restaurantbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		restaurants`

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

// QueryByID gets the specified restaurant from the database.
func (s *Store) QueryByID(ctx context.Context, restaurantID uuid.UUID) (restaurantbus.Restaurant, error) {
	data := struct {
		ID string `db:"restaurant_id"`
	}{
		ID: restaurantID.String(),
	}

	const q = `
	SELECT
		restaurant_id, name, subdomain, active, settings, created_at, updated_at
	FROM
		restaurants
	WHERE
		restaurant_id = :restaurant_id`

	var dbRst restaurantDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbRst); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return restaurantbus.Restaurant{}, fmt.Errorf("db: %w", restaurantbus.ErrNotFound)
		}
		return restaurantbus.Restaurant{}, fmt.Errorf("db: %w", err)
	}

	return toBusRestaurant(dbRst)
}

// QueryBySubdomain gets the restaurant with the specified subdomain.
func (s *Store) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (restaurantbus.Restaurant, error) {
	data := struct {
		Subdomain string `db:"subdomain"`
	}{
		Subdomain: sub.String(),
	}

	const q = `
	SELECT
		restaurant_id, name, subdomain, active, settings, created_at, updated_at
	FROM
		restaurants
	WHERE
		subdomain = :subdomain`

	var dbRst restaurantDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbRst); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return restaurantbus.Restaurant{}, fmt.Errorf("db: %w", restaurantbus.ErrNotFound)
		}
		return restaurantbus.Restaurant{}, fmt.Errorf("db: %w", err)
	}

	return toBusRestaurant(dbRst)
}
