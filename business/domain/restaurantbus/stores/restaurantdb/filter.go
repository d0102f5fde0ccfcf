package restaurantdb

import (
	"bytes"
	"strings"

	"github.com/rifuud/api/business/domain/restaurantbus"
)

func applyFilter(filter restaurantbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["restaurant_id"] = *filter.ID
		wc = append(wc, "restaurant_id = :restaurant_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + *filter.Name + "%"
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Subdomain != nil {
		data["subdomain"] = filter.Subdomain.String()
		wc = append(wc, "subdomain = :subdomain")
	}

	if filter.Active != nil {
		data["active"] = *filter.Active
		wc = append(wc, "active = :active")
	}

	if filter.StartCreatedAt != nil {
		data["start_created_at"] = filter.StartCreatedAt.UTC()
		wc = append(wc, "created_at >= :start_created_at")
	}

	if filter.EndCreatedAt != nil {
		data["end_created_at"] = filter.EndCreatedAt.UTC()
		wc = append(wc, "created_at <= :end_created_at")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
