package restaurantbus

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/subdomain"
)

// Restaurant represents a tenant of the platform.
type Restaurant struct {
	ID        uuid.UUID
	Name      name.Name
	Subdomain subdomain.Subdomain
	Active    bool
	Settings  json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRestaurant contains information needed to create a new restaurant.
type NewRestaurant struct {
	Name      name.Name
	Subdomain subdomain.Subdomain
	Settings  json.RawMessage
}

// UpdateRestaurant contains information needed to update a restaurant.
type UpdateRestaurant struct {
	Name     *name.Name
	Active   *bool
	Settings *json.RawMessage
}
