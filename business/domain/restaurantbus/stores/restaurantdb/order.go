package restaurantdb

import (
	"fmt"

	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/sdk/order"
)

var orderByFields = map[string]string{
	restaurantbus.OrderByID:        "restaurant_id",
	restaurantbus.OrderByName:      "name",
	restaurantbus.OrderBySubdomain: "subdomain",
	restaurantbus.OrderByActive:    "active",
	restaurantbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
