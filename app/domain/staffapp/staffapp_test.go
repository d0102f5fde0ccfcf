package staffapp_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rifuud/api/app/domain/staffapp"
	"github.com/rifuud/api/app/sdk/apitest"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID                  string  `json:"id"`
	FirstName           string  `json:"firstName"`
	Username            string  `json:"username"`
	Role                *string `json:"role"`
	RestaurantID        string  `json:"restaurantId"`
	RestaurantSubdomain string  `json:"restaurantSubdomain"`
	IsActive            bool    `json:"isActive"`
}

type result struct {
	Items []user `json:"items"`
	Total int    `json:"total"`
}

func setup(t *testing.T) (*apitest.Test, string) {
	t.Helper()

	at := apitest.New(t)

	staffapp.Routes(at.App, staffapp.Config{
		Log:           at.Log,
		DB:            at.DB,
		Auth:          at.Auth,
		RestaurantBus: at.RestaurantBus,
		StaffBus:      at.StaffBus,
	})

	return at, at.SeedAdmin(t, "admin", adminrole.Admin)
}

func newUser(uname string, pass string) map[string]any {
	return map[string]any{
		"firstName": "Bob",
		"lastName":  "Stone",
		"phone":     "+55 11 99999-0000",
		"role":      "Waiter",
		"username":  uname,
		"password":  pass,
	}
}

func create(t *testing.T, at *apitest.Test, token string, rst restaurantbus.Restaurant, body map[string]any, commit bool) (int, []byte) {
	t.Helper()

	at.Mock.ExpectBegin()
	switch commit {
	case true:
		at.Mock.ExpectCommit()
	default:
		at.Mock.ExpectRollback()
	}

	w := at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurants/" + rst.ID.String() + "/users",
		Token:  token,
		Body:   body,
	})

	require.NoError(t, at.Mock.ExpectationsWereMet())

	return w.Code, w.Body.Bytes()
}

func Test_Create(t *testing.T) {
	at, token := setup(t)
	rst := at.SeedRestaurant(t, "acme")

	at.Mock.ExpectBegin()
	at.Mock.ExpectCommit()

	w := at.Do(t, apitest.Request{
		Method: http.MethodPost,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurants/" + rst.ID.String() + "/users",
		Token:  token,
		Body:   newUser("bob", "Secret123"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, at.Mock.ExpectationsWereMet())

	var got user
	apitest.Decode(t, w, &got)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, rst.ID.String(), got.RestaurantID)
	assert.Equal(t, "acme", got.RestaurantSubdomain)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.Role)
	assert.Equal(t, "Waiter", *got.Role)
	assert.NotContains(t, w.Body.String(), "Secret123")
}

func Test_CreateWithoutRole(t *testing.T) {
	at, token := setup(t)
	rst := at.SeedRestaurant(t, "acme")

	body := newUser("bob", "Secret123")
	delete(body, "role")

	code, data := create(t, at, token, rst, body, true)
	require.Equal(t, http.StatusCreated, code, string(data))
	assert.Contains(t, string(data), `"role":null`)
}

func Test_CreateUsernamePerRestaurant(t *testing.T) {
	at, token := setup(t)
	acme := at.SeedRestaurant(t, "acme")
	beta := at.SeedRestaurant(t, "beta")

	code, data := create(t, at, token, acme, newUser("bob", "Secret123"), true)
	require.Equal(t, http.StatusCreated, code, string(data))

	code, data = create(t, at, token, beta, newUser("bob", "Secret123"), true)
	require.Equal(t, http.StatusCreated, code, string(data))

	code, data = create(t, at, token, acme, newUser("bob", "Secret123"), false)
	require.Equal(t, http.StatusConflict, code, string(data))
	assert.Contains(t, string(data), errs.APIRestaurantUsernameExists)
}

func Test_CreateCheckOrder(t *testing.T) {
	at, token := setup(t)
	rst := at.SeedRestaurant(t, "acme")

	code, data := create(t, at, token, rst, newUser("bob", "Secret123"), true)
	require.Equal(t, http.StatusCreated, code, string(data))

	// A taken username is reported before a weak password.
	code, data = create(t, at, token, rst, newUser("bob", "weak"), false)
	require.Equal(t, http.StatusConflict, code, string(data))
	assert.Contains(t, string(data), errs.APIRestaurantUsernameExists)

	code, data = create(t, at, token, rst, newUser("carol", "weak"), false)
	require.Equal(t, http.StatusBadRequest, code, string(data))
	assert.Contains(t, string(data), errs.APIPasswordRequirements)
	assert.Contains(t, string(data), "at least 8 characters")
}

func Test_CreateUnknownRestaurant(t *testing.T) {
	at, token := setup(t)
	ghost := restaurantbus.Restaurant{ID: uuid.New()}

	code, data := create(t, at, token, ghost, newUser("bob", "Secret123"), false)
	require.Equal(t, http.StatusNotFound, code, string(data))
	assert.Contains(t, string(data), errs.APIRestaurantNotFound)
}

func Test_CreateInvalidFields(t *testing.T) {
	at, token := setup(t)
	rst := at.SeedRestaurant(t, "acme")

	body := newUser("bob", "Secret123")
	body["role"] = "Sommelier"
	body["phone"] = "call me"

	code, data := create(t, at, token, rst, body, false)
	require.Equal(t, http.StatusBadRequest, code, string(data))

	var resp apitest.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, errs.APIValidation, resp.APICode)
	assert.Contains(t, resp.Fields, "role")
	assert.Contains(t, resp.Fields, "phone")
}

func Test_QueryScopedToRestaurant(t *testing.T) {
	at, token := setup(t)
	acme := at.SeedRestaurant(t, "acme")
	beta := at.SeedRestaurant(t, "beta")

	code, data := create(t, at, token, acme, newUser("bob", "Secret123"), true)
	require.Equal(t, http.StatusCreated, code, string(data))

	var bob user
	require.NoError(t, json.Unmarshal(data, &bob))

	code, data = create(t, at, token, beta, newUser("eve", "Secret123"), true)
	require.Equal(t, http.StatusCreated, code, string(data))

	w := at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurants/" + acme.ID.String() + "/users",
		Token:  token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got result
	apitest.Decode(t, w, &got)
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "bob", got.Items[0].Username)

	w = at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurants/" + acme.ID.String() + "/users/" + bob.ID,
		Token:  token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurants/" + beta.ID.String() + "/users/" + bob.ID,
		Token:  token,
	})
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Equal(t, errs.APIRestaurantUserNotFound, apitest.DecodeError(t, w).APICode)
}

func Test_QueryAcrossRestaurants(t *testing.T) {
	at, token := setup(t)
	acme := at.SeedRestaurant(t, "acme")
	beta := at.SeedRestaurant(t, "beta")

	code, data := create(t, at, token, acme, newUser("bob", "Secret123"), true)
	require.Equal(t, http.StatusCreated, code, string(data))

	code, data = create(t, at, token, beta, newUser("eve", "Secret123"), true)
	require.Equal(t, http.StatusCreated, code, string(data))

	var eve user
	require.NoError(t, json.Unmarshal(data, &eve))

	list := func(url string) result {
		t.Helper()

		w := at.Do(t, apitest.Request{
			Method: http.MethodGet,
			Host:   apitest.BackofficeHost,
			URL:    url,
			Token:  token,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got result
		apitest.Decode(t, w, &got)
		return got
	}

	got := list("/v1/backoffice/restaurant-users")
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Items, 2)

	got = list("/v1/backoffice/restaurant-users?restaurant_subdomain=beta")
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "eve", got.Items[0].Username)
	assert.Equal(t, beta.ID.String(), got.Items[0].RestaurantID)

	w := at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurant-users?restaurant_subdomain=Beta",
		Token:  token,
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, apitest.DecodeError(t, w).Fields, "restaurant_subdomain")

	w = at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurant-users/" + eve.ID,
		Token:  token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var one user
	apitest.Decode(t, w, &one)
	assert.Equal(t, "eve", one.Username)
	assert.Equal(t, "beta", one.RestaurantSubdomain)

	w = at.Do(t, apitest.Request{
		Method: http.MethodGet,
		Host:   apitest.BackofficeHost,
		URL:    "/v1/backoffice/restaurant-users/" + uuid.NewString(),
		Token:  token,
	})
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Equal(t, errs.APIRestaurantUserNotFound, apitest.DecodeError(t, w).APICode)
}
