package staffapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/phone"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/username"
)

// User represents information about a restaurant user.
type User struct {
	ID                  string  `json:"id"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Phone               string  `json:"phone"`
	Role                *string `json:"role"`
	Username            string  `json:"username"`
	RestaurantID        string  `json:"restaurantId"`
	RestaurantSubdomain string  `json:"restaurantSubdomain"`
	IsActive            bool    `json:"isActive"`
	DateCreated         string  `json:"createdAt"`
	DateUpdated         string  `json:"updatedAt"`
}

// Encode implements the web.Encoder interface.
func (app User) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppUser(bus staffbus.User) User {
	var role *string
	if r, ok := bus.Role.Role(); ok {
		s := r.String()
		role = &s
	}

	return User{
		ID:                  bus.ID.String(),
		FirstName:           bus.FirstName.String(),
		LastName:            bus.LastName.String(),
		Phone:               bus.Phone.String(),
		Role:                role,
		Username:            bus.Username.String(),
		RestaurantID:        bus.RestaurantID.String(),
		RestaurantSubdomain: bus.RestaurantSubdomain.String(),
		IsActive:            bus.Active,
		DateCreated:         bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:         bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppUsers(users []staffbus.User) []User {
	app := make([]User, len(users))
	for i, usr := range users {
		app[i] = toAppUser(usr)
	}
	return app
}

// CreatedUser is returned with a 201 status.
type CreatedUser struct {
	User
}

// HTTPStatus implements the web httpStatus interface.
func (CreatedUser) HTTPStatus() int {
	return http.StatusCreated
}

// =============================================================================

// NewUser defines the data needed to add a user to a restaurant. The password
// is checked against the staff policy by the handler so the caller gets the
// dedicated error code.
type NewUser struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// toBusNewUser converts everything but the password and the restaurant,
// which the handler fills in.
func toBusNewUser(app NewUser) (staffbus.NewUser, error) {
	var fieldErrors errs.FieldErrors

	first, err := name.Parse(app.FirstName)
	if err != nil {
		fieldErrors.Add("firstName", err)
	}

	last, err := name.Parse(app.LastName)
	if err != nil {
		fieldErrors.Add("lastName", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		fieldErrors.Add("phone", err)
	}

	role, err := staffrole.ParseNull(app.Role)
	if err != nil {
		fieldErrors.Add("role", err)
	}

	uname, err := username.Parse(app.Username)
	if err != nil {
		fieldErrors.Add("username", err)
	}

	if fieldErrors != nil {
		return staffbus.NewUser{}, fieldErrors.ToError()
	}

	bus := staffbus.NewUser{
		FirstName: first,
		LastName:  last,
		Phone:     ph,
		Role:      role,
		Username:  uname,
	}

	return bus, nil
}
