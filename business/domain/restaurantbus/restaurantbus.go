// Package restaurantbus provides business access to restaurants, the tenants
// of the platform.
package restaurantbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/foundation/logger"
	"github.com/rifuud/api/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound        = errors.New("restaurant not found")
	ErrUniqueSubdomain = errors.New("subdomain is not unique")
	ErrHasUsers        = errors.New("restaurant still has users")
	ErrInvalidSettings = errors.New("settings must be a JSON object")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, rst Restaurant) error
	Update(ctx context.Context, rst Restaurant) error
	Delete(ctx context.Context, rst Restaurant) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Restaurant, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, restaurantID uuid.UUID) (Restaurant, error)
	QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (Restaurant, error)
}

// Core manages the set of APIs for restaurant access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a restaurant core API for use.
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

// Create adds a new restaurant. The subdomain must be unique across the
// platform; a duplicate yields ErrUniqueSubdomain.
func (c *Core) Create(ctx context.Context, nr NewRestaurant) (Restaurant, error) {
	ctx, span := otel.AddSpan(ctx, "business.restaurantbus.create")
	defer span.End()

	settings, err := normalizeSettings(nr.Settings)
	if err != nil {
		return Restaurant{}, err
	}

	now := time.Now()

	rst := Restaurant{
		ID:        uuid.New(),
		Name:      nr.Name,
		Subdomain: nr.Subdomain,
		Active:    true,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, rst); err != nil {
		return Restaurant{}, fmt.Errorf("create: %w", err)
	}

	return rst, nil
}

// Update modifies information about a restaurant. The subdomain is the
// natural key of the tenant and never changes.
func (c *Core) Update(ctx context.Context, rst Restaurant, ur UpdateRestaurant) (Restaurant, error) {
	ctx, span := otel.AddSpan(ctx, "business.restaurantbus.update")
	defer span.End()

	if ur.Name != nil {
		rst.Name = *ur.Name
	}

	if ur.Active != nil {
		rst.Active = *ur.Active
	}

	if ur.Settings != nil {
		settings, err := normalizeSettings(*ur.Settings)
		if err != nil {
			return Restaurant{}, err
		}
		rst.Settings = settings
	}

	rst.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, rst); err != nil {
		return Restaurant{}, fmt.Errorf("update: %w", err)
	}

	return rst, nil
}

// SetActive activates or deactivates a restaurant.
func (c *Core) SetActive(ctx context.Context, rst Restaurant, active bool) (Restaurant, error) {
	return c.Update(ctx, rst, UpdateRestaurant{Active: &active})
}

// Delete removes the restaurant. It is refused with ErrHasUsers while
// restaurant users still reference it.
func (c *Core) Delete(ctx context.Context, rst Restaurant) error {
	ctx, span := otel.AddSpan(ctx, "business.restaurantbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, rst); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing restaurants.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Restaurant, error) {
	ctx, span := otel.AddSpan(ctx, "business.restaurantbus.query")
	defer span.End()

	rsts, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return rsts, nil
}

// Count returns the total number of restaurants.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.restaurantbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the restaurant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, restaurantID uuid.UUID) (Restaurant, error) {
	ctx, span := otel.AddSpan(ctx, "business.restaurantbus.querybyid")
	defer span.End()

	rst, err := c.storer.QueryByID(ctx, restaurantID)
	if err != nil {
		return Restaurant{}, fmt.Errorf("query: restaurantID[%s]: %w", restaurantID, err)
	}

	return rst, nil
}

// QueryBySubdomain finds the restaurant by its subdomain.
func (c *Core) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (Restaurant, error) {
	ctx, span := otel.AddSpan(ctx, "business.restaurantbus.querybysubdomain")
	defer span.End()

	rst, err := c.storer.QueryBySubdomain(ctx, sub)
	if err != nil {
		return Restaurant{}, fmt.Errorf("query: subdomain[%s]: %w", sub, err)
	}

	return rst, nil
}

// =============================================================================

func normalizeSettings(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return json.RawMessage(`{}`), nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil, ErrInvalidSettings
	}

	return raw, nil
}
