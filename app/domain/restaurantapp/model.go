package restaurantapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/subdomain"
)

// Restaurant represents information about an individual restaurant.
type Restaurant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Subdomain   string          `json:"subdomain"`
	IsActive    bool            `json:"isActive"`
	Settings    json.RawMessage `json:"settings"`
	DateCreated string          `json:"createdAt"`
	DateUpdated string          `json:"updatedAt"`
}

// Encode implements the web.Encoder interface.
func (app Restaurant) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppRestaurant(bus restaurantbus.Restaurant) Restaurant {
	return Restaurant{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Subdomain:   bus.Subdomain.String(),
		IsActive:    bus.Active,
		Settings:    bus.Settings,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppRestaurants(rsts []restaurantbus.Restaurant) []Restaurant {
	app := make([]Restaurant, len(rsts))
	for i, rst := range rsts {
		app[i] = toAppRestaurant(rst)
	}
	return app
}

// CreatedRestaurant is returned with a 201 status.
type CreatedRestaurant struct {
	Restaurant
}

// HTTPStatus implements the web httpStatus interface.
func (CreatedRestaurant) HTTPStatus() int {
	return http.StatusCreated
}

// =============================================================================

// NewRestaurant defines the data needed to add a new restaurant.
type NewRestaurant struct {
	Name      string          `json:"name" validate:"required,max=255"`
	Subdomain string          `json:"subdomain" validate:"required"`
	IsActive  *bool           `json:"isActive"`
	Settings  json.RawMessage `json:"settings"`
}

// Decode implements the web.Decoder interface.
func (app *NewRestaurant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewRestaurant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewRestaurant(app NewRestaurant) (restaurantbus.NewRestaurant, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return restaurantbus.NewRestaurant{}, errs.NewFieldErrors("name", err)
	}

	sub, err := subdomain.Parse(app.Subdomain)
	if err != nil {
		return restaurantbus.NewRestaurant{}, errs.NewAPI(errs.InvalidArgument, errs.APIRestaurantInvalidSubdomain, errs.FriendlySubdomainInvalid, err)
	}

	bus := restaurantbus.NewRestaurant{
		Name:      nme,
		Subdomain: sub,
		Settings:  app.Settings,
	}

	return bus, nil
}
