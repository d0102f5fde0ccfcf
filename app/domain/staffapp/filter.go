package staffapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/subdomain"
)

type queryParams struct {
	Page     string
	Rows     string
	OrderBy  string
	ID       string
	Username string
	Role     string
	Active   string
	Sub      string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:     values.Get("page"),
		Rows:     values.Get("rows"),
		OrderBy:  values.Get("orderBy"),
		ID:       values.Get("user_id"),
		Username: values.Get("username"),
		Role:     values.Get("role"),
		Active:   values.Get("active"),
		Sub:      values.Get("restaurant_subdomain"),
	}
}

func parseFilter(qp queryParams) (staffbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter staffbus.QueryFilter

	if qp.Sub != "" {
		sub, err := subdomain.Parse(qp.Sub)
		switch err {
		case nil:
			filter.RestaurantSubdomain = sub
		default:
			fieldErrors.Add("restaurant_subdomain", err)
		}
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("user_id", err)
		}
	}

	if qp.Username != "" {
		filter.Username = &qp.Username
	}

	if qp.Role != "" {
		role, err := staffrole.Parse(qp.Role)
		switch err {
		case nil:
			filter.Role = &role
		default:
			fieldErrors.Add("role", err)
		}
	}

	if qp.Active != "" {
		active, err := strconv.ParseBool(qp.Active)
		switch err {
		case nil:
			filter.Active = &active
		default:
			fieldErrors.Add("active", err)
		}
	}

	if fieldErrors != nil {
		return staffbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
