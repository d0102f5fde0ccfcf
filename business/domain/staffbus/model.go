package staffbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/phone"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/business/types/username"
)

// User represents a member of a restaurant's staff. RestaurantID and
// RestaurantActive are read from the owning restaurant.
type User struct {
	ID                  uuid.UUID
	FirstName           name.Name
	LastName            name.Name
	Phone               phone.Null
	Username            username.Username
	PasswordHash        string
	Role                staffrole.Null
	RestaurantSubdomain subdomain.Subdomain
	RestaurantID        uuid.UUID
	RestaurantActive    bool
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewUser contains information needed to create a new restaurant user.
type NewUser struct {
	FirstName           name.Name
	LastName            name.Name
	Phone               phone.Null
	Username            username.Username
	Password            password.Password
	Role                staffrole.Null
	RestaurantSubdomain subdomain.Subdomain
}
