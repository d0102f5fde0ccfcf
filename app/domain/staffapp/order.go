package staffapp

import "github.com/rifuud/api/business/domain/staffbus"

var orderByFields = map[string]string{
	"user_id":    staffbus.OrderByID,
	"name":       staffbus.OrderByName,
	"username":   staffbus.OrderByUsername,
	"role":       staffbus.OrderByRole,
	"created_at": staffbus.OrderByCreatedAt,
}
