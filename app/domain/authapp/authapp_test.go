package authapp_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rifuud/api/app/domain/authapp"
	"github.com/rifuud/api/app/sdk/apitest"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/username"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type token struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

type profile struct {
	Message             string `json:"message"`
	UserID              string `json:"userId"`
	Username            string `json:"username"`
	Role                string `json:"role"`
	IsAuthenticated     bool   `json:"isAuthenticated"`
	RestaurantSubdomain string `json:"restaurantSubdomain"`
}

func setup(t *testing.T, allowLocalhost bool) *apitest.Test {
	t.Helper()

	at := apitest.New(t)

	authapp.Routes(at.App, authapp.Config{
		Log:            at.Log,
		Auth:           at.Auth,
		AllowLocalhost: allowLocalhost,
	})

	at.SeedAdmin(t, "root", adminrole.Root)

	rst := at.SeedRestaurant(t, "acme")
	_, err := at.StaffBus.Create(context.Background(), staffbus.NewUser{
		FirstName:           name.MustParse("Bob"),
		LastName:            name.MustParse("Stone"),
		Username:            username.MustParse("bob"),
		Password:            password.Staff.MustParse("Secret123"),
		Role:                staffrole.NewNull(staffrole.Manager),
		RestaurantSubdomain: rst.Subdomain,
	})
	require.NoError(t, err)

	return at
}

func Test_AdminLoginAndProfile(t *testing.T) {
	at := setup(t, false)

	w := at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/auth/admin/login",
		Body:   map[string]string{"username": "root", "password": "AdminPassword1"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tkn token
	apitest.Decode(t, w, &tkn)
	require.NotEmpty(t, tkn.Token)
	assert.Equal(t, "Bearer", tkn.TokenType)
	assert.Equal(t, int64(24*60*60), tkn.ExpiresIn)

	w = at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/auth/admin/profile",
		Token:  tkn.Token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got profile
	apitest.Decode(t, w, &got)
	assert.Equal(t, "AdminUser JWT authentication successful", got.Message)
	assert.Equal(t, "root", got.Username)
	assert.Equal(t, "Root", got.Role)
	assert.True(t, got.IsAuthenticated)
	assert.NotEmpty(t, got.UserID)
}

func Test_AdminLoginFailures(t *testing.T) {
	at := setup(t, false)

	tests := []struct {
		name   string
		body   map[string]string
		status int
		code   string
	}{
		{"wrong password", map[string]string{"username": "root", "password": "WrongPassword1"}, http.StatusUnauthorized, errs.APIInvalidCredentials},
		{"unknown user", map[string]string{"username": "nobody", "password": "AdminPassword1"}, http.StatusUnauthorized, errs.APIInvalidCredentials},
		{"missing password", map[string]string{"username": "root"}, http.StatusBadRequest, errs.APIValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := at.Do(t, apitest.Request{
				Method: http.MethodPost,
				Host:   apitest.BackofficeHost,
				URL:    "/v1/auth/admin/login",
				Body:   tt.body,
			})
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, apitest.DecodeError(t, w).APICode)
		})
	}
}

func Test_AdminLoginWrongSurface(t *testing.T) {
	at := setup(t, false)

	w := at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   apitest.RestaurantHost,
		URL:    "/v1/auth/admin/login",
		Body:   map[string]string{"username": "root", "password": "AdminPassword1"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.APIInvalidSubdomain, apitest.DecodeError(t, w).APICode)

	w = at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   "localhost:3000",
		URL:    "/v1/auth/admin/login",
		Body:   map[string]string{"username": "root", "password": "AdminPassword1"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_AdminLoginLocalhost(t *testing.T) {
	at := setup(t, true)

	w := at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   "localhost:3000",
		URL:    "/v1/auth/admin/login",
		Body:   map[string]string{"username": "root", "password": "AdminPassword1"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func Test_RestaurantLoginAndProfile(t *testing.T) {
	at := setup(t, false)

	w := at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   apitest.RestaurantHost,
		URL:    "/v1/auth/restaurant/login",
		Body:   map[string]string{"username": "bob", "password": "Secret123", "subdomain": "acme"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tkn token
	apitest.Decode(t, w, &tkn)
	assert.Equal(t, int64(8*60*60), tkn.ExpiresIn)

	w = at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.RestaurantHost,
		URL:    "/v1/auth/restaurant/profile",
		Token:  tkn.Token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got profile
	apitest.Decode(t, w, &got)
	assert.Equal(t, "RestaurantUser JWT authentication successful", got.Message)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, "Manager", got.Role)
	assert.Equal(t, "acme", got.RestaurantSubdomain)
}

func Test_RestaurantLoginScopedToRestaurant(t *testing.T) {
	at := setup(t, false)
	at.SeedRestaurant(t, "beta")

	for _, sub := range []string{"beta", "nope", "NOT VALID"} {
		w := at.Do(t, apitest.Request{
			Method: http.MethodPost,
			Host:   apitest.RestaurantHost,
			URL:    "/v1/auth/restaurant/login",
			Body:   map[string]string{"username": "bob", "password": "Secret123", "subdomain": sub},
		})
		require.Equal(t, http.StatusUnauthorized, w.Code, sub)
		assert.Equal(t, errs.APIInvalidCredentials, apitest.DecodeError(t, w).APICode, sub)
	}
}

func Test_RealmsDoNotMix(t *testing.T) {
	at := setup(t, true)

	w := at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   apitest.RestaurantHost,
		URL:    "/v1/auth/restaurant/login",
		Body:   map[string]string{"username": "bob", "password": "Secret123", "subdomain": "acme"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tkn token
	apitest.Decode(t, w, &tkn)

	w = at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   "localhost",
		URL:    "/v1/auth/admin/profile",
		Token:  tkn.Token,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errs.APIInvalidToken, apitest.DecodeError(t, w).APICode)
}
