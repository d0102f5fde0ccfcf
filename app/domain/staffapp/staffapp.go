// Package staffapp maintains the app layer api for managing the users of a
// restaurant from the backoffice.
package staffapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/app/sdk/mid"
	"github.com/rifuud/api/app/sdk/query"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/sdk/order"
	"github.com/rifuud/api/business/sdk/page"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/foundation/logger"
)

type app struct {
	log           *logger.Logger
	restaurantBus *restaurantbus.Core
	staffBus      *staffbus.Core
}

func newApp(log *logger.Logger, restaurantBus *restaurantbus.Core, staffBus *staffbus.Core) *app {
	return &app{
		log:           log,
		restaurantBus: restaurantBus,
		staffBus:      staffBus,
	}
}

// newWithTx binds the staff core to the request transaction.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	staffBus, err := a.staffBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &app{
		log:           a.log,
		restaurantBus: a.restaurantBus,
		staffBus:      staffBus,
	}, nil
}

// create adds a user to the restaurant. The restaurant must exist, the
// username must be free inside it and the password must meet the staff
// policy, checked in that order.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	a, err = a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	rst, rerr := a.queryRestaurant(ctx, r)
	if rerr != nil {
		return rerr
	}

	_, err = a.staffBus.QueryByUsername(ctx, rst.Subdomain, nu.Username.String())
	switch {
	case err == nil:
		return usernameExists(staffbus.ErrUniqueUsername)
	case !errors.Is(err, staffbus.ErrNotFound):
		return errs.Errorf(errs.InternalOnlyLog, "querybyusername: %s", err)
	}

	pass, err := password.Staff.Parse(app.Password)
	if err != nil {
		return errs.NewAPI(errs.InvalidArgument, errs.APIPasswordRequirements, fmt.Sprintf(errs.FriendlyPassword, password.Staff.MinLength()), err)
	}

	nu.Password = pass
	nu.RestaurantSubdomain = rst.Subdomain

	usr, err := a.staffBus.Create(ctx, nu)
	if err != nil {
		switch {
		case errors.Is(err, staffbus.ErrUniqueUsername):
			return usernameExists(err)
		case errors.Is(err, staffbus.ErrRestaurantNotFound):
			return restaurantNotFound(err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: restaurantID[%s] username[%s]: %s", rst.ID, nu.Username, err)
	}

	a.log.Info(ctx, "restaurant user created", "userID", usr.ID, "username", usr.Username, "restaurantID", rst.ID)

	return CreatedUser{User: toAppUser(usr)}
}

// query lists the users of the restaurant of the route.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	rst, rerr := a.queryRestaurant(ctx, r)
	if rerr != nil {
		return rerr
	}

	return a.queryUsers(ctx, r, rst)
}

// queryAll lists users across restaurants, optionally narrowed by the
// restaurant_subdomain query parameter.
func (a *app) queryAll(ctx context.Context, r *http.Request) web.Encoder {
	return a.queryUsers(ctx, r, restaurantbus.Restaurant{})
}

// queryUsers runs the listing. A zero rst leaves the scope to the query
// parameters.
func (a *app) queryUsers(ctx context.Context, r *http.Request, rst restaurantbus.Restaurant) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if !rst.Subdomain.IsZero() {
		filter.RestaurantSubdomain = rst.Subdomain
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, staffbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.staffBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "query: %s", err)
	}

	total, err := a.staffBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, page)
}

// queryByID returns the user only when it belongs to the restaurant of the
// route.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	rst, rerr := a.queryRestaurant(ctx, r)
	if rerr != nil {
		return rerr
	}

	usr, uerr := a.queryUser(ctx, r)
	if uerr != nil {
		return uerr
	}

	if !usr.RestaurantSubdomain.Equal(rst.Subdomain) {
		return userNotFound(staffbus.ErrNotFound)
	}

	return toAppUser(usr)
}

// queryUserByID returns the user whatever restaurant it belongs to.
func (a *app) queryUserByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, uerr := a.queryUser(ctx, r)
	if uerr != nil {
		return uerr
	}

	return toAppUser(usr)
}

// =============================================================================

func (a *app) queryRestaurant(ctx context.Context, r *http.Request) (restaurantbus.Restaurant, *errs.Error) {
	id, err := uuid.Parse(web.Param(r, "restaurant_id"))
	if err != nil {
		return restaurantbus.Restaurant{}, errs.NewFieldErrors("restaurant_id", err)
	}

	rst, err := a.restaurantBus.QueryByID(ctx, id)
	if err != nil {
		if errors.Is(err, restaurantbus.ErrNotFound) {
			return restaurantbus.Restaurant{}, restaurantNotFound(err)
		}
		return restaurantbus.Restaurant{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: restaurantID[%s]: %s", id, err)
	}

	return rst, nil
}

func (a *app) queryUser(ctx context.Context, r *http.Request) (staffbus.User, *errs.Error) {
	userID, err := uuid.Parse(web.Param(r, "user_id"))
	if err != nil {
		return staffbus.User{}, errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.staffBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, staffbus.ErrNotFound) {
			return staffbus.User{}, userNotFound(err)
		}
		return staffbus.User{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: userID[%s]: %s", userID, err)
	}

	return usr, nil
}

func restaurantNotFound(err error) *errs.Error {
	return errs.NewAPI(errs.NotFound, errs.APIRestaurantNotFound, errs.FriendlyRestaurantNotFound, err)
}

func userNotFound(err error) *errs.Error {
	return errs.NewAPI(errs.NotFound, errs.APIRestaurantUserNotFound, errs.FriendlyUserNotFound, err)
}

func usernameExists(err error) *errs.Error {
	return errs.NewAPI(errs.AlreadyExists, errs.APIRestaurantUsernameExists, errs.FriendlyUsernameExists, err)
}
