// Package all binds all the routes into the specified app.
package all

import (
	"github.com/rifuud/api/app/domain/authapp"
	"github.com/rifuud/api/app/domain/checkapp"
	"github.com/rifuud/api/app/domain/restaurantapp"
	"github.com/rifuud/api/app/domain/staffapp"
	"github.com/rifuud/api/app/sdk/mux"
	"github.com/rifuud/api/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouterAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {
	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
		Redis: cfg.Redis,
	})

	authapp.Routes(app, authapp.Config{
		Log:            cfg.Log,
		Auth:           cfg.Auth,
		AllowLocalhost: cfg.AllowLocalhost,
	})

	restaurantapp.Routes(app, restaurantapp.Config{
		Log:            cfg.Log,
		Auth:           cfg.Auth,
		RestaurantBus:  cfg.BusConfig.RestaurantBus,
		AllowLocalhost: cfg.AllowLocalhost,
	})

	staffapp.Routes(app, staffapp.Config{
		Log:            cfg.Log,
		DB:             cfg.DB,
		Auth:           cfg.Auth,
		RestaurantBus:  cfg.BusConfig.RestaurantBus,
		StaffBus:       cfg.BusConfig.StaffBus,
		AllowLocalhost: cfg.AllowLocalhost,
	})
}
