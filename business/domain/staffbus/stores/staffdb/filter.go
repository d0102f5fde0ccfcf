package staffdb

import (
	"bytes"
	"strings"

	"github.com/rifuud/api/business/domain/staffbus"
)

func applyFilter(filter staffbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if !filter.RestaurantSubdomain.IsZero() {
		data["restaurant_subdomain"] = filter.RestaurantSubdomain.String()
		wc = append(wc, "u.restaurant_subdomain = :restaurant_subdomain")
	}

	if filter.ID != nil {
		data["restaurant_user_id"] = *filter.ID
		wc = append(wc, "u.restaurant_user_id = :restaurant_user_id")
	}

	if filter.Username != nil {
		data["username"] = "%" + *filter.Username + "%"
		wc = append(wc, "u.username ILIKE :username")
	}

	if filter.Role != nil {
		data["role"] = filter.Role.String()
		wc = append(wc, "u.role = :role")
	}

	if filter.Active != nil {
		data["active"] = *filter.Active
		wc = append(wc, "u.active = :active")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
