// Package staffbus provides business access to restaurant users.
package staffbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
	"github.com/rifuud/api/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound              = errors.New("restaurant user not found")
	ErrUniqueUsername        = errors.New("username is not unique within the restaurant")
	ErrRestaurantNotFound    = errors.New("restaurant not found")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, usr User) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, userID uuid.UUID) (User, error)
	QueryByUsername(ctx context.Context, sub subdomain.Subdomain, uname string) (User, error)
}

// Core manages the set of APIs for restaurant user access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a restaurant user core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new user to the restaurant named by nu.RestaurantSubdomain.
// The returned user is read back so the restaurant fields are populated.
func (c *Core) Create(ctx context.Context, nu NewUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.staffbus.create")
	defer span.End()

	now := time.Now()

	usr := User{
		ID:                  uuid.New(),
		FirstName:           nu.FirstName,
		LastName:            nu.LastName,
		Phone:               nu.Phone,
		Username:            nu.Username,
		PasswordHash:        password.Staff.Hash(nu.Password.String()),
		Role:                nu.Role,
		RestaurantSubdomain: nu.RestaurantSubdomain,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := c.storer.Create(ctx, usr); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	created, err := c.storer.QueryByID(ctx, usr.ID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", usr.ID, err)
	}

	return created, nil
}

// Query retrieves a list of users of one restaurant.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error) {
	ctx, span := otel.AddSpan(ctx, "business.staffbus.query")
	defer span.End()

	users, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return users, nil
}

// Count returns the total number of users of one restaurant.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.staffbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the user by the specified ID.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.staffbus.querybyid")
	defer span.End()

	usr, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return usr, nil
}

// QueryByUsername finds the user by username within one restaurant. The
// same username may exist in other restaurants.
func (c *Core) QueryByUsername(ctx context.Context, sub subdomain.Subdomain, uname string) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.staffbus.querybyusername")
	defer span.End()

	usr, err := c.storer.QueryByUsername(ctx, sub, uname)
	if err != nil {
		return User{}, fmt.Errorf("query: subdomain[%s] username[%s]: %w", sub, uname, err)
	}

	return usr, nil
}

// Authenticate finds the user by username within the restaurant and verifies
// the password. An unknown user and a wrong password both return
// ErrAuthenticationFailure.
func (c *Core) Authenticate(ctx context.Context, uname string, pass string, sub subdomain.Subdomain) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.staffbus.authenticate")
	defer span.End()

	usr, err := c.QueryByUsername(ctx, sub, uname)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrAuthenticationFailure
		}
		return User{}, err
	}

	if !password.Staff.Verify(pass, usr.PasswordHash) {
		return User{}, ErrAuthenticationFailure
	}

	return usr, nil
}
