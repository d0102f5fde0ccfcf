package authapp

import (
	"net/http"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/mid"
	"github.com/rifuud/api/app/sdk/tenancy"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log            *logger.Logger
	Auth           *auth.Auth
	AllowLocalhost bool
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	backoffice := mid.RequireSurface(tenancy.Backoffice, cfg.AllowLocalhost)
	restaurant := mid.RequireSurface(tenancy.Restaurant, cfg.AllowLocalhost)

	api := newApp(cfg.Log, cfg.Auth)

	app.HandlerFunc(http.MethodPost, version, "/auth/admin/login", api.adminLogin, backoffice)
	app.HandlerFunc(http.MethodGet, version, "/auth/admin/profile", api.adminProfile, backoffice, mid.Authenticate(cfg.Auth, auth.RealmAdmin))

	app.HandlerFunc(http.MethodPost, version, "/auth/restaurant/login", api.restaurantLogin, restaurant)
	app.HandlerFunc(http.MethodGet, version, "/auth/restaurant/profile", api.restaurantProfile, restaurant, mid.Authenticate(cfg.Auth, auth.RealmStaff))
}
