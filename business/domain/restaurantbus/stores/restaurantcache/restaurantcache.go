// Package restaurantcache contains restaurant related CRUD functionality
// with caching. Tenant resolution reads a restaurant on every restaurant
// login, so lookups by id and by subdomain are served from memory.
package restaurantcache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for restaurant data and caching.
type Store struct {
	log    *logger.Logger
	storer restaurantbus.Storer
	cache  *sturdyc.Client[restaurantbus.Restaurant]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer restaurantbus.Storer, ttl time.Duration) *Store {
	const (
		capacity           = 10000
		numShards          = 10
		evictionPercentage = 10
	)

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[restaurantbus.Restaurant](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer with one
// bound to the transaction. The cache is shared.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (restaurantbus.Storer, error) {
	storer, err := s.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log:    s.log,
		storer: storer,
		cache:  s.cache,
	}

	return &store, nil
}

// Create inserts a new restaurant into the database.
func (s *Store) Create(ctx context.Context, rst restaurantbus.Restaurant) error {
	if err := s.storer.Create(ctx, rst); err != nil {
		return err
	}

	s.writeCache(rst)

	return nil
}

// Update replaces a restaurant document in the database.
func (s *Store) Update(ctx context.Context, rst restaurantbus.Restaurant) error {
	if err := s.storer.Update(ctx, rst); err != nil {
		return err
	}

	s.deleteCache(rst)

	return nil
}

// Delete removes a restaurant from the database.
func (s *Store) Delete(ctx context.Context, rst restaurantbus.Restaurant) error {
	if err := s.storer.Delete(ctx, rst); err != nil {
		return err
	}

	s.deleteCache(rst)

	return nil
}

// Query retrieves a list of existing restaurants from the database.
func (s *Store) Query(ctx context.Context, filter restaurantbus.QueryFilter, orderBy order.By, page page.Page) ([]restaurantbus.Restaurant, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of restaurants in the DB.
func (s *Store) Count(ctx context.Context, filter restaurantbus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified restaurant from the cache or database.
func (s *Store) QueryByID(ctx context.Context, restaurantID uuid.UUID) (restaurantbus.Restaurant, error) {
	fetch := func(ctx context.Context) (restaurantbus.Restaurant, error) {
		return s.storer.QueryByID(ctx, restaurantID)
	}

	return s.cache.GetOrFetch(ctx, idKey(restaurantID), fetch)
}

// QueryBySubdomain gets the restaurant with the subdomain from the cache
// or database.
func (s *Store) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (restaurantbus.Restaurant, error) {
	fetch := func(ctx context.Context) (restaurantbus.Restaurant, error) {
		return s.storer.QueryBySubdomain(ctx, sub)
	}

	return s.cache.GetOrFetch(ctx, subKey(sub), fetch)
}

// =============================================================================

func (s *Store) writeCache(rst restaurantbus.Restaurant) {
	s.cache.Set(idKey(rst.ID), rst)
	s.cache.Set(subKey(rst.Subdomain), rst)
}

func (s *Store) deleteCache(rst restaurantbus.Restaurant) {
	s.cache.Delete(idKey(rst.ID))
	s.cache.Delete(subKey(rst.Subdomain))
}

func idKey(id uuid.UUID) string {
	return "id:" + id.String()
}

func subKey(sub subdomain.Subdomain) string {
	return "sub:" + sub.String()
}
