package restaurantapp

import "github.com/rifuud/api/business/domain/restaurantbus"

var orderByFields = map[string]string{
	"restaurant_id": restaurantbus.OrderByID,
	"name":          restaurantbus.OrderByName,
	"subdomain":     restaurantbus.OrderBySubdomain,
	"active":        restaurantbus.OrderByActive,
	"created_at":    restaurantbus.OrderByCreatedAt,
}
