package staffdb

import (
	"fmt"
	"strings"

	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/sdk/order"
)

var orderByFields = map[string][]string{
	staffbus.OrderByID:        {"u.restaurant_user_id"},
	staffbus.OrderByName:      {"u.first_name", "u.last_name"},
	staffbus.OrderByUsername:  {"u.username"},
	staffbus.OrderByRole:      {"u.role"},
	staffbus.OrderByCreatedAt: {"u.created_at"},
}

func orderByClause(orderBy order.By) (string, error) {
	cols, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " " + orderBy.Direction
	}

	return " ORDER BY " + strings.Join(parts, ", "), nil
}
