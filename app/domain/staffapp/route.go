package staffapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/mid"
	"github.com/rifuud/api/app/sdk/tenancy"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/business/types/resource"
	"github.com/rifuud/api/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log            *logger.Logger
	DB             *sqlx.DB
	Auth           *auth.Auth
	RestaurantBus  *restaurantbus.Core
	StaffBus       *staffbus.Core
	AllowLocalhost bool
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	surface := mid.RequireSurface(tenancy.Backoffice, cfg.AllowLocalhost)
	authen := mid.Authenticate(cfg.Auth, auth.RealmAdmin)
	authz := mid.Authorize(cfg.Auth, resource.RestaurantUser)
	transaction := mid.BeginCommitRollback(cfg.Log, sqldb.NewBeginner(cfg.DB))

	api := newApp(cfg.Log, cfg.RestaurantBus, cfg.StaffBus)

	app.HandlerFunc(http.MethodGet, version, "/backoffice/restaurants/{restaurant_id}/users", api.query, surface, authen, authz)
	app.HandlerFunc(http.MethodGet, version, "/backoffice/restaurants/{restaurant_id}/users/{user_id}", api.queryByID, surface, authen, authz)
	app.HandlerFunc(http.MethodPost, version, "/backoffice/restaurants/{restaurant_id}/users", api.create, surface, authen, authz, transaction)

	app.HandlerFunc(http.MethodGet, version, "/backoffice/restaurant-users", api.queryAll, surface, authen, authz)
	app.HandlerFunc(http.MethodGet, version, "/backoffice/restaurant-users/{user_id}", api.queryUserByID, surface, authen, authz)
}
