// Package restaurantapp maintains the app layer api for managing restaurants
// from the backoffice.
package restaurantapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/app/sdk/query"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/foundation/logger"
)

type app struct {
	log           *logger.Logger
	restaurantBus *restaurantbus.Core
}

func newApp(log *logger.Logger, restaurantBus *restaurantbus.Core) *app {
	return &app{
		log:           log,
		restaurantBus: restaurantBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewRestaurant
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nr, err := toBusNewRestaurant(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	rst, err := a.restaurantBus.Create(ctx, nr)
	if err != nil {
		return busError(err, "create: rst[%+v]", nr)
	}

	if app.IsActive != nil && !*app.IsActive {
		updRst, err := a.restaurantBus.SetActive(ctx, rst, false)
		if err != nil {
			return busError(err, "deactivate: restaurantID[%s]", rst.ID)
		}
		rst = updRst
	}

	a.log.Info(ctx, "restaurant created", "restaurantID", rst.ID, "subdomain", rst.Subdomain)

	return CreatedRestaurant{Restaurant: toAppRestaurant(rst)}
}

func (a *app) activate(ctx context.Context, r *http.Request) web.Encoder {
	return a.setActive(ctx, r, true)
}

func (a *app) deactivate(ctx context.Context, r *http.Request) web.Encoder {
	return a.setActive(ctx, r, false)
}

func (a *app) setActive(ctx context.Context, r *http.Request, active bool) web.Encoder {
	rst, err := a.queryRestaurant(ctx, r)
	if err != nil {
		return err
	}

	updRst, serr := a.restaurantBus.SetActive(ctx, rst, active)
	if serr != nil {
		return busError(serr, "setactive: restaurantID[%s] active[%t]", rst.ID, active)
	}

	return toAppRestaurant(updRst)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	rst, err := a.queryRestaurant(ctx, r)
	if err != nil {
		return err
	}

	if err := a.restaurantBus.Delete(ctx, rst); err != nil {
		return busError(err, "delete: restaurantID[%s]", rst.ID)
	}

	return nil
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, restaurantbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	rsts, err := a.restaurantBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query: %s", err)
	}

	total, err := a.restaurantBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "count: %s", err)
	}

	return query.NewResult(toAppRestaurants(rsts), total, page)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	rst, err := a.queryRestaurant(ctx, r)
	if err != nil {
		return err
	}

	return toAppRestaurant(rst)
}

// =============================================================================

func (a *app) queryRestaurant(ctx context.Context, r *http.Request) (restaurantbus.Restaurant, *errs.Error) {
	id, err := uuid.Parse(web.Param(r, "restaurant_id"))
	if err != nil {
		return restaurantbus.Restaurant{}, errs.NewFieldErrors("restaurant_id", err)
	}

	rst, err := a.restaurantBus.QueryByID(ctx, id)
	if err != nil {
		return restaurantbus.Restaurant{}, busError(err, "querybyid: restaurantID[%s]", id)
	}

	return rst, nil
}

func busError(err error, format string, args ...any) *errs.Error {
	switch {
	case errors.Is(err, restaurantbus.ErrNotFound):
		return errs.NewAPI(errs.NotFound, errs.APIRestaurantNotFound, errs.FriendlyRestaurantNotFound, err)

	case errors.Is(err, restaurantbus.ErrUniqueSubdomain):
		return errs.NewAPI(errs.AlreadyExists, errs.APIRestaurantSubdomainExists, errs.FriendlySubdomainExists, err)

	case errors.Is(err, restaurantbus.ErrHasUsers):
		return errs.NewAPI(errs.Aborted, errs.APIRestaurantHasUsers, errs.FriendlyRestaurantHasUsers, err)

	case errors.Is(err, restaurantbus.ErrInvalidSettings):
		return errs.NewFieldErrors("settings", err)
	}

	return errs.Errorf(errs.InternalOnlyLog, format+": %s", append(args, err)...)
}
