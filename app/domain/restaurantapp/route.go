package restaurantapp

import (
	"net/http"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/mid"
	"github.com/rifuud/api/app/sdk/tenancy"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/business/types/resource"
	"github.com/rifuud/api/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log            *logger.Logger
	Auth           *auth.Auth
	RestaurantBus  *restaurantbus.Core
	AllowLocalhost bool
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	surface := mid.RequireSurface(tenancy.Backoffice, cfg.AllowLocalhost)
	authen := mid.Authenticate(cfg.Auth, auth.RealmAdmin)
	authz := mid.Authorize(cfg.Auth, resource.Restaurant)

	api := newApp(cfg.Log, cfg.RestaurantBus)

	app.HandlerFunc(http.MethodGet, version, "/backoffice/restaurants", api.query, surface, authen, authz)
	app.HandlerFunc(http.MethodGet, version, "/backoffice/restaurants/{restaurant_id}", api.queryByID, surface, authen, authz)
	app.HandlerFunc(http.MethodPost, version, "/backoffice/restaurants", api.create, surface, authen, authz)
	app.HandlerFunc(http.MethodPost, version, "/backoffice/restaurants/{restaurant_id}/activate", api.activate, surface, authen, authz)
	app.HandlerFunc(http.MethodPost, version, "/backoffice/restaurants/{restaurant_id}/deactivate", api.deactivate, surface, authen, authz)
	app.HandlerFunc(http.MethodDelete, version, "/backoffice/restaurants/{restaurant_id}", api.delete, surface, authen, authz)
}
