package apitest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/subdomain"
)

// MemDB keeps every table in memory and enforces the same constraints as the
// database: unique subdomains, usernames unique per restaurant, and the
// restaurant foreign key of restaurant users.
type MemDB struct {
	mu          sync.Mutex
	admins      map[uuid.UUID]adminbus.User
	restaurants map[uuid.UUID]restaurantbus.Restaurant
	users       map[uuid.UUID]staffbus.User
}

// NewMemDB constructs an empty MemDB.
func NewMemDB() *MemDB {
	return &MemDB{
		admins:      make(map[uuid.UUID]adminbus.User),
		restaurants: make(map[uuid.UUID]restaurantbus.Restaurant),
		users:       make(map[uuid.UUID]staffbus.User),
	}
}

func (m *MemDB) restaurantBySubdomain(sub subdomain.Subdomain) (restaurantbus.Restaurant, bool) {
	for _, r := range m.restaurants {
		if r.Subdomain.Equal(sub) {
			return r, true
		}
	}
	return restaurantbus.Restaurant{}, false
}

// =============================================================================

// AdminStore implements adminbus.Storer.
type AdminStore struct{ db *MemDB }

// NewWithTx implements adminbus.Storer.
func (s AdminStore) NewWithTx(tx sqldb.CommitRollbacker) (adminbus.Storer, error) {
	return s, nil
}

// Create implements adminbus.Storer.
func (s AdminStore) Create(ctx context.Context, usr adminbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.admins {
		if u.Username.Equal(usr.Username) {
			return adminbus.ErrUniqueUsername
		}
	}
	s.db.admins[usr.ID] = usr

	return nil
}

// QueryByID implements adminbus.Storer.
func (s AdminStore) QueryByID(ctx context.Context, userID uuid.UUID) (adminbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	usr, ok := s.db.admins[userID]
	if !ok {
		return adminbus.User{}, adminbus.ErrNotFound
	}
	return usr, nil
}

// QueryByUsername implements adminbus.Storer.
func (s AdminStore) QueryByUsername(ctx context.Context, uname string) (adminbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.admins {
		if u.Username.String() == uname {
			return u, nil
		}
	}
	return adminbus.User{}, adminbus.ErrNotFound
}

// CountByRole implements adminbus.Storer.
func (s AdminStore) CountByRole(ctx context.Context, role adminrole.Role) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int
	for _, u := range s.db.admins {
		if u.Role.Equal(role) {
			n++
		}
	}
	return n, nil
}

// =============================================================================

// RestaurantStore implements restaurantbus.Storer.
type RestaurantStore struct{ db *MemDB }

// NewWithTx implements restaurantbus.Storer.
func (s RestaurantStore) NewWithTx(tx sqldb.CommitRollbacker) (restaurantbus.Storer, error) {
	return s, nil
}

// Create implements restaurantbus.Storer.
func (s RestaurantStore) Create(ctx context.Context, rst restaurantbus.Restaurant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.restaurantBySubdomain(rst.Subdomain); exists {
		return restaurantbus.ErrUniqueSubdomain
	}
	s.db.restaurants[rst.ID] = rst

	return nil
}

// Update implements restaurantbus.Storer.
func (s RestaurantStore) Update(ctx context.Context, rst restaurantbus.Restaurant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.restaurants[rst.ID] = rst
	return nil
}

// Delete implements restaurantbus.Storer.
func (s RestaurantStore) Delete(ctx context.Context, rst restaurantbus.Restaurant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.RestaurantSubdomain.Equal(rst.Subdomain) {
			return restaurantbus.ErrHasUsers
		}
	}
	delete(s.db.restaurants, rst.ID)

	return nil
}

// Query implements restaurantbus.Storer. Results are ordered by name and
// paged; only the Active filter is honored.
func (s RestaurantStore) Query(ctx context.Context, filter restaurantbus.QueryFilter, orderBy order.By, pg page.Page) ([]restaurantbus.Restaurant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]restaurantbus.Restaurant, 0, len(s.db.restaurants))
	for _, r := range s.db.restaurants {
		if filter.Active != nil && r.Active != *filter.Active {
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name.String() < out[j].Name.String() })

	return paginate(out, pg), nil
}

// Count implements restaurantbus.Storer.
func (s RestaurantStore) Count(ctx context.Context, filter restaurantbus.QueryFilter) (int, error) {
	rsts, err := s.Query(ctx, filter, restaurantbus.DefaultOrderBy, page.MustParse("1", "100"))
	return len(rsts), err
}

// QueryByID implements restaurantbus.Storer.
func (s RestaurantStore) QueryByID(ctx context.Context, restaurantID uuid.UUID) (restaurantbus.Restaurant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rst, ok := s.db.restaurants[restaurantID]
	if !ok {
		return restaurantbus.Restaurant{}, restaurantbus.ErrNotFound
	}
	return rst, nil
}

// QueryBySubdomain implements restaurantbus.Storer.
func (s RestaurantStore) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (restaurantbus.Restaurant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rst, ok := s.db.restaurantBySubdomain(sub)
	if !ok {
		return restaurantbus.Restaurant{}, restaurantbus.ErrNotFound
	}
	return rst, nil
}

// =============================================================================

// StaffStore implements staffbus.Storer.
type StaffStore struct{ db *MemDB }

// NewWithTx implements staffbus.Storer.
func (s StaffStore) NewWithTx(tx sqldb.CommitRollbacker) (staffbus.Storer, error) {
	return s, nil
}

// Create implements staffbus.Storer.
func (s StaffStore) Create(ctx context.Context, usr staffbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.restaurantBySubdomain(usr.RestaurantSubdomain); !exists {
		return staffbus.ErrRestaurantNotFound
	}

	for _, u := range s.db.users {
		if u.RestaurantSubdomain.Equal(usr.RestaurantSubdomain) && u.Username.Equal(usr.Username) {
			return staffbus.ErrUniqueUsername
		}
	}
	s.db.users[usr.ID] = usr

	return nil
}

// Query implements staffbus.Storer.
func (s StaffStore) Query(ctx context.Context, filter staffbus.QueryFilter, orderBy order.By, pg page.Page) ([]staffbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var out []staffbus.User
	for _, u := range s.db.users {
		if !filter.RestaurantSubdomain.IsZero() && !u.RestaurantSubdomain.Equal(filter.RestaurantSubdomain) {
			continue
		}
		if filter.ID != nil && u.ID != *filter.ID {
			continue
		}
		if filter.Username != nil && u.Username.String() != *filter.Username {
			continue
		}
		out = append(out, s.join(u))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Username.String() < out[j].Username.String() })

	return paginate(out, pg), nil
}

// Count implements staffbus.Storer.
func (s StaffStore) Count(ctx context.Context, filter staffbus.QueryFilter) (int, error) {
	usrs, err := s.Query(ctx, filter, staffbus.DefaultOrderBy, page.MustParse("1", "100"))
	return len(usrs), err
}

// QueryByID implements staffbus.Storer.
func (s StaffStore) QueryByID(ctx context.Context, userID uuid.UUID) (staffbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	usr, ok := s.db.users[userID]
	if !ok {
		return staffbus.User{}, staffbus.ErrNotFound
	}
	return s.join(usr), nil
}

// QueryByUsername implements staffbus.Storer.
func (s StaffStore) QueryByUsername(ctx context.Context, sub subdomain.Subdomain, uname string) (staffbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.RestaurantSubdomain.Equal(sub) && u.Username.String() == uname {
			return s.join(u), nil
		}
	}
	return staffbus.User{}, staffbus.ErrNotFound
}

func (s StaffStore) join(usr staffbus.User) staffbus.User {
	if rst, ok := s.db.restaurantBySubdomain(usr.RestaurantSubdomain); ok {
		usr.RestaurantID = rst.ID
		usr.RestaurantActive = rst.Active
	}
	return usr
}

// =============================================================================

func paginate[T any](items []T, pg page.Page) []T {
	start := pg.Offset()
	if start >= len(items) {
		return []T{}
	}

	end := start + pg.RowsPerPage()
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
