// Package apitest provides support for testing the app layer handlers
// against in memory stores.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/mid"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/business/types/username"
	"github.com/rifuud/api/foundation/logger"
	"github.com/stretchr/testify/require"
)

// Hosts for each surface.
const (
	BackofficeHost = "backoffice.rifuud.com"
	RestaurantHost = "restaurant.rifuud.com"
)

// Test holds everything a handler test needs.
type Test struct {
	Log           *logger.Logger
	DB            *sqlx.DB
	Mock          sqlmock.Sqlmock
	Mem           *MemDB
	Auth          *auth.Auth
	AdminBus      *adminbus.Core
	RestaurantBus *restaurantbus.Core
	StaffBus      *staffbus.Core
	App           *web.App
}

// New constructs a Test with empty stores and both realms configured.
func New(t *testing.T) *Test {
	t.Helper()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "TEST", nil)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	mem := NewMemDB()

	adminBus := adminbus.NewCore(log, AdminStore{db: mem})
	restaurantBus := restaurantbus.NewCore(log, RestaurantStore{db: mem})
	staffBus := staffbus.NewCore(log, StaffStore{db: mem})

	ath, err := auth.New(auth.Config{
		Log:      log,
		AdminBus: adminBus,
		StaffBus: staffBus,
		Admin:    auth.RealmConfig{Secret: "admin-secret-for-api-tests"},
		Staff:    auth.RealmConfig{Secret: "staff-secret-for-api-tests"},
	})
	require.NoError(t, err)

	return &Test{
		Log:           log,
		DB:            sqlx.NewDb(mockDB, "pgx"),
		Mock:          mock,
		Mem:           mem,
		Auth:          ath,
		AdminBus:      adminBus,
		RestaurantBus: restaurantBus,
		StaffBus:      staffBus,
		App:           web.NewApp(log.Info, mid.Errors(log), mid.Panics()),
	}
}

// SeedAdmin stores an administrator and returns a token for it.
func (at *Test) SeedAdmin(t *testing.T, uname string, role adminrole.Role) string {
	t.Helper()

	usr, err := at.AdminBus.Create(context.Background(), adminbus.NewUser{
		Username: username.MustParse(uname),
		Role:     role,
		Password: password.Admin.MustParse("AdminPassword1"),
	})
	require.NoError(t, err)

	token, err := at.Auth.GenerateToken(auth.RealmAdmin, usr)
	require.NoError(t, err)

	return token
}

// SeedRestaurant stores an active restaurant.
func (at *Test) SeedRestaurant(t *testing.T, sub string) restaurantbus.Restaurant {
	t.Helper()

	rst, err := at.RestaurantBus.Create(context.Background(), restaurantbus.NewRestaurant{
		Name:      name.MustParse("Restaurant " + sub),
		Subdomain: subdomain.MustParse(sub),
	})
	require.NoError(t, err)

	return rst
}

// Request describes one call against the App.
type Request struct {
	Method string
	Host   string
	URL    string
	Token  string
	Body   any
}

// Do runs the request and returns the recorded response.
func (at *Test) Do(t *testing.T, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	r := httptest.NewRequest(req.Method, req.URL, body)
	r.Host = req.Host
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}

	w := httptest.NewRecorder()
	at.App.ServeHTTP(w, r)

	return w
}

// ErrorResponse is the body written by the error middleware.
type ErrorResponse struct {
	Code     string            `json:"code"`
	APICode  string            `json:"apiCode"`
	Message  string            `json:"message"`
	Friendly string            `json:"friendlyMessage"`
	Fields   map[string]string `json:"fields"`
}

// Decode unmarshals the response body into v.
func Decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// DecodeError unmarshals an error body.
func DecodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	Decode(t, w, &resp)

	return resp
}

// Handler returns the App as a plain http.Handler.
func (at *Test) Handler() http.Handler {
	return at.App
}
