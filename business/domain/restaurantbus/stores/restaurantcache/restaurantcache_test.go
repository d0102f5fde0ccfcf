package restaurantcache_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/restaurantbus/stores/restaurantcache"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	mu    sync.Mutex
	rst   restaurantbus.Restaurant
	reads int
}

func (s *countingStore) NewWithTx(tx sqldb.CommitRollbacker) (restaurantbus.Storer, error) {
	return s, nil
}

func (s *countingStore) Create(ctx context.Context, rst restaurantbus.Restaurant) error {
	return nil
}

func (s *countingStore) Update(ctx context.Context, rst restaurantbus.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rst = rst
	return nil
}

func (s *countingStore) Delete(ctx context.Context, rst restaurantbus.Restaurant) error {
	return nil
}

func (s *countingStore) Query(ctx context.Context, filter restaurantbus.QueryFilter, orderBy order.By, page page.Page) ([]restaurantbus.Restaurant, error) {
	return nil, nil
}

func (s *countingStore) Count(ctx context.Context, filter restaurantbus.QueryFilter) (int, error) {
	return 0, nil
}

func (s *countingStore) QueryByID(ctx context.Context, restaurantID uuid.UUID) (restaurantbus.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	if restaurantID != s.rst.ID {
		return restaurantbus.Restaurant{}, restaurantbus.ErrNotFound
	}
	return s.rst, nil
}

func (s *countingStore) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (restaurantbus.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	if !sub.Equal(s.rst.Subdomain) {
		return restaurantbus.Restaurant{}, restaurantbus.ErrNotFound
	}
	return s.rst, nil
}

func (s *countingStore) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reads
}

func newStore(t *testing.T) (*restaurantcache.Store, *countingStore) {
	t.Helper()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "TEST", nil)

	backing := &countingStore{
		rst: restaurantbus.Restaurant{
			ID:        uuid.New(),
			Name:      name.MustParse("Acme Grill"),
			Subdomain: subdomain.MustParse("acme"),
			Active:    true,
		},
	}

	return restaurantcache.NewStore(log, backing, time.Minute), backing
}

func Test_QueryBySubdomainCached(t *testing.T) {
	store, backing := newStore(t)
	ctx := context.Background()

	for range 3 {
		rst, err := store.QueryBySubdomain(ctx, subdomain.MustParse("acme"))
		require.NoError(t, err)
		assert.Equal(t, backing.rst.ID, rst.ID)
	}

	assert.Equal(t, 1, backing.readCount())
}

func Test_UpdateEvicts(t *testing.T) {
	store, backing := newStore(t)
	ctx := context.Background()

	rst, err := store.QueryByID(ctx, backing.rst.ID)
	require.NoError(t, err)
	require.True(t, rst.Active)

	rst.Active = false
	require.NoError(t, store.Update(ctx, rst))

	got, err := store.QueryByID(ctx, rst.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 2, backing.readCount())
}

func Test_NotFoundPassesThrough(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.QueryBySubdomain(context.Background(), subdomain.MustParse("ghost"))
	require.ErrorIs(t, err, restaurantbus.ErrNotFound)
}
