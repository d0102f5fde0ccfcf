package staffbus

import (
	"github.com/google/uuid"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/subdomain"
)

// QueryFilter holds the available fields a query can be filtered on.
// A zero RestaurantSubdomain lists the users of every restaurant.
type QueryFilter struct {
	RestaurantSubdomain subdomain.Subdomain
	ID                  *uuid.UUID
	Username            *string
	Role                *staffrole.Role
	Active              *bool
}
