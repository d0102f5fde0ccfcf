package restaurantbus

import "github.com/rifuud/api/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "a"
	OrderByName      = "b"
	OrderBySubdomain = "c"
	OrderByActive    = "d"
	OrderByCreatedAt = "e"
)
