package restaurantbus_test

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	rsts  map[uuid.UUID]restaurantbus.Restaurant
	users map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		rsts:  make(map[uuid.UUID]restaurantbus.Restaurant),
		users: make(map[string]int),
	}
}

func (m *memStore) NewWithTx(tx sqldb.CommitRollbacker) (restaurantbus.Storer, error) {
	return m, nil
}

func (m *memStore) Create(ctx context.Context, rst restaurantbus.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rsts {
		if r.Subdomain.Equal(rst.Subdomain) {
			return restaurantbus.ErrUniqueSubdomain
		}
	}
	m.rsts[rst.ID] = rst

	return nil
}

func (m *memStore) Update(ctx context.Context, rst restaurantbus.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rsts[rst.ID] = rst
	return nil
}

func (m *memStore) Delete(ctx context.Context, rst restaurantbus.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.users[rst.Subdomain.String()] > 0 {
		return restaurantbus.ErrHasUsers
	}
	delete(m.rsts, rst.ID)

	return nil
}

func (m *memStore) Query(ctx context.Context, filter restaurantbus.QueryFilter, orderBy order.By, page page.Page) ([]restaurantbus.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []restaurantbus.Restaurant
	for _, r := range m.rsts {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) Count(ctx context.Context, filter restaurantbus.QueryFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rsts), nil
}

func (m *memStore) QueryByID(ctx context.Context, restaurantID uuid.UUID) (restaurantbus.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rst, ok := m.rsts[restaurantID]
	if !ok {
		return restaurantbus.Restaurant{}, restaurantbus.ErrNotFound
	}
	return rst, nil
}

func (m *memStore) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (restaurantbus.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rsts {
		if r.Subdomain.Equal(sub) {
			return r, nil
		}
	}
	return restaurantbus.Restaurant{}, restaurantbus.ErrNotFound
}

func newCore() (*restaurantbus.Core, *memStore) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "TEST", nil)

	store := newMemStore()
	return restaurantbus.NewCore(log, store), store
}

func Test_Create(t *testing.T) {
	core, _ := newCore()
	ctx := context.Background()

	rst, err := core.Create(ctx, restaurantbus.NewRestaurant{
		Name:      name.MustParse("Acme Grill"),
		Subdomain: subdomain.MustParse("acme"),
	})
	require.NoError(t, err)
	assert.True(t, rst.Active)
	assert.JSONEq(t, `{}`, string(rst.Settings))

	got, err := core.QueryBySubdomain(ctx, subdomain.MustParse("acme"))
	require.NoError(t, err)
	assert.Equal(t, rst.ID, got.ID)
}

func Test_CreateDuplicateSubdomain(t *testing.T) {
	core, _ := newCore()
	ctx := context.Background()

	nr := restaurantbus.NewRestaurant{
		Name:      name.MustParse("Acme Grill"),
		Subdomain: subdomain.MustParse("acme"),
	}

	_, err := core.Create(ctx, nr)
	require.NoError(t, err)

	nr.Name = name.MustParse("Another Acme")
	_, err = core.Create(ctx, nr)
	require.ErrorIs(t, err, restaurantbus.ErrUniqueSubdomain)

	n, err := core.Count(ctx, restaurantbus.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func Test_CreateInvalidSettings(t *testing.T) {
	core, _ := newCore()

	_, err := core.Create(context.Background(), restaurantbus.NewRestaurant{
		Name:      name.MustParse("Acme Grill"),
		Subdomain: subdomain.MustParse("acme"),
		Settings:  json.RawMessage(`[1,2,3]`),
	})
	require.ErrorIs(t, err, restaurantbus.ErrInvalidSettings)
}

func Test_SetActive(t *testing.T) {
	core, _ := newCore()
	ctx := context.Background()

	rst, err := core.Create(ctx, restaurantbus.NewRestaurant{
		Name:      name.MustParse("Acme Grill"),
		Subdomain: subdomain.MustParse("acme"),
	})
	require.NoError(t, err)

	rst, err = core.SetActive(ctx, rst, false)
	require.NoError(t, err)
	assert.False(t, rst.Active)

	got, err := core.QueryByID(ctx, rst.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "acme", got.Subdomain.String())
}

func Test_DeleteWithUsers(t *testing.T) {
	core, store := newCore()
	ctx := context.Background()

	rst, err := core.Create(ctx, restaurantbus.NewRestaurant{
		Name:      name.MustParse("Acme Grill"),
		Subdomain: subdomain.MustParse("acme"),
	})
	require.NoError(t, err)

	store.users["acme"] = 1
	require.ErrorIs(t, core.Delete(ctx, rst), restaurantbus.ErrHasUsers)

	store.users["acme"] = 0
	require.NoError(t, core.Delete(ctx, rst))

	_, err = core.QueryByID(ctx, rst.ID)
	require.ErrorIs(t, err, restaurantbus.ErrNotFound)
}
