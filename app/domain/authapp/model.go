package authapp

import (
	"encoding/json"
	"fmt"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/errs"
)

// Token is returned by both login endpoints.
type Token struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppToken(token string, rc auth.RealmConfig) Token {
	return Token{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(rc.Expiry.Seconds()),
	}
}

// =============================================================================

// AdminLogin holds the credentials of an administrator.
type AdminLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *AdminLogin) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app AdminLogin) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// RestaurantLogin holds the credentials of a restaurant user together with
// the restaurant the account belongs to.
type RestaurantLogin struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Subdomain string `json:"subdomain" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *RestaurantLogin) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app RestaurantLogin) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// =============================================================================

// AdminProfile is the response of the administrator profile endpoint.
type AdminProfile struct {
	Message         string `json:"message"`
	UserID          string `json:"userId"`
	Username        string `json:"username"`
	Role            string `json:"role"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Encode implements the web.Encoder interface.
func (p AdminProfile) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppAdminProfile(p auth.AdminProfile) AdminProfile {
	return AdminProfile{
		Message:         p.Message,
		UserID:          p.UserID,
		Username:        p.Username,
		Role:            p.Role,
		IsAuthenticated: p.IsAuthenticated,
	}
}

// RestaurantProfile is the response of the restaurant user profile endpoint.
type RestaurantProfile struct {
	Message             string `json:"message"`
	UserID              string `json:"userId"`
	Username            string `json:"username"`
	Role                string `json:"role"`
	IsAuthenticated     bool   `json:"isAuthenticated"`
	RestaurantSubdomain string `json:"restaurantSubdomain"`
}

// Encode implements the web.Encoder interface.
func (p RestaurantProfile) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppRestaurantProfile(p auth.StaffProfile) RestaurantProfile {
	return RestaurantProfile{
		Message:             p.Message,
		UserID:              p.UserID,
		Username:            p.Username,
		Role:                p.Role,
		IsAuthenticated:     p.IsAuthenticated,
		RestaurantSubdomain: p.RestaurantSubdomain,
	}
}
