package restaurantapp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/types/subdomain"
)

type queryParams struct {
	Page             string
	Rows             string
	OrderBy          string
	ID               string
	Name             string
	Subdomain        string
	Active           string
	StartCreatedDate string
	EndCreatedDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:             values.Get("page"),
		Rows:             values.Get("rows"),
		OrderBy:          values.Get("orderBy"),
		ID:               values.Get("restaurant_id"),
		Name:             values.Get("name"),
		Subdomain:        values.Get("subdomain"),
		Active:           values.Get("active"),
		StartCreatedDate: values.Get("start_created_date"),
		EndCreatedDate:   values.Get("end_created_date"),
	}
}

func parseFilter(qp queryParams) (restaurantbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter restaurantbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("restaurant_id", err)
		}
	}

	if qp.Name != "" {
		filter.Name = &qp.Name
	}

	if qp.Subdomain != "" {
		sub, err := subdomain.Parse(qp.Subdomain)
		switch err {
		case nil:
			filter.Subdomain = &sub
		default:
			fieldErrors.Add("subdomain", err)
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

	if qp.StartCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.StartCreatedDate)
		switch err {
		case nil:
			filter.StartCreatedAt = &t
		default:
			fieldErrors.Add("start_created_date", err)
		}
	}

	if qp.EndCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.EndCreatedDate)
		switch err {
		case nil:
			filter.EndCreatedAt = &t
		default:
			fieldErrors.Add("end_created_date", err)
		}
	}

	if fieldErrors != nil {
		return restaurantbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
