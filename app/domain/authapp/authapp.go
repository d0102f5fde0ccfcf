// Package authapp maintains the app layer api for signing in to either
// realm and for reading the signed in profile.
package authapp

import (
	"context"
	"net/http"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/app/sdk/mid"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/foundation/logger"
)

type app struct {
	log  *logger.Logger
	auth *auth.Auth
}

func newApp(log *logger.Logger, ath *auth.Auth) *app {
	return &app{
		log:  log,
		auth: ath,
	}
}

func (a *app) adminLogin(ctx context.Context, r *http.Request) web.Encoder {
	var req AdminLogin
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	token, err := a.auth.LoginAdmin(ctx, req.Username, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	a.log.Info(ctx, "admin user logged in", "username", req.Username)

	return toAppToken(token, a.auth.Realm(auth.RealmAdmin))
}

func (a *app) adminProfile(ctx context.Context, _ *http.Request) web.Encoder {
	claims, err := mid.GetAdminClaims(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	return toAppAdminProfile(auth.AdminProfileFromClaims(claims))
}

func (a *app) restaurantLogin(ctx context.Context, r *http.Request) web.Encoder {
	var req RestaurantLogin
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	token, err := a.auth.LoginStaff(ctx, req.Username, req.Password, req.Subdomain)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	a.log.Info(ctx, "restaurant user logged in", "username", req.Username, "subdomain", req.Subdomain)

	return toAppToken(token, a.auth.Realm(auth.RealmStaff))
}

func (a *app) restaurantProfile(ctx context.Context, _ *http.Request) web.Encoder {
	claims, err := mid.GetStaffClaims(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	return toAppRestaurantProfile(auth.StaffProfileFromClaims(claims))
}
