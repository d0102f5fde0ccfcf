package tenancy_test

import (
	"net/http/httptest"
	"testing"

	"github.com/rifuud/api/app/sdk/tenancy"
	"github.com/stretchr/testify/assert"
)

func Test_Resolve(t *testing.T) {
	tests := map[string]string{
		"acme.rifuud.com":            "acme",
		"acme.rifuud.com:8080":       "acme",
		"ACME.Rifuud.com":            "acme",
		"backoffice.rifuud.com":      "backoffice",
		"restaurant.rifuud.com:443":  "restaurant",
		"a.b.rifuud.com":             "a",
		"acme.rifuud.com.":           "acme",
		"rifuud.com":                 tenancy.Localhost,
		"www.rifuud.org":             tenancy.Localhost,
		"acme.example.com":           tenancy.Localhost,
		"acme.rifuud.com.evil.io":    tenancy.Localhost,
		"localhost":                  tenancy.Localhost,
		"localhost:3000":             tenancy.Localhost,
		"127.0.0.1:3000":             tenancy.Localhost,
		"10.1.2.3":                   tenancy.Localhost,
		"192.168.0.10":               tenancy.Localhost,
		"8.8.8.8":                    tenancy.Localhost,
		"[::1]:3000":                 tenancy.Localhost,
		"::1":                        tenancy.Localhost,
		".rifuud.com":                tenancy.Localhost,
		"":                           tenancy.Localhost,
		"   ":                        tenancy.Localhost,
		"single":                     tenancy.Localhost,
		"10.rifuud.com":              tenancy.Localhost,
		"127.acme.rifuud.com":        tenancy.Localhost,
		"kitchen-2.rifuud.com":       "kitchen-2",
	}

	for host, want := range tests {
		t.Run(host, func(t *testing.T) {
			got := tenancy.Resolve(host)
			assert.Equal(t, want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func Test_ClientHost(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		referer string
		host    string
		want    string
	}{
		{name: "origin wins", origin: "https://backoffice.rifuud.com", referer: "https://acme.rifuud.com/x", host: "api.rifuud.com", want: "backoffice.rifuud.com"},
		{name: "referer next", referer: "https://acme.rifuud.com/menu?x=1", host: "api.rifuud.com", want: "acme.rifuud.com"},
		{name: "request host last", host: "api.rifuud.com:8080", want: "api.rifuud.com:8080"},
		{name: "keeps custom port", origin: "http://localhost:5173", host: "api", want: "localhost:5173"},
		{name: "drops https port", origin: "https://acme.rifuud.com:443", host: "api", want: "acme.rifuud.com"},
		{name: "drops http port", origin: "http://acme.rifuud.com:80", host: "api", want: "acme.rifuud.com"},
		{name: "null origin", origin: "null", referer: "https://acme.rifuud.com/", host: "api", want: "acme.rifuud.com"},
		{name: "malformed", origin: "::not a url", referer: "%%%", host: "restaurant.rifuud.com", want: "restaurant.rifuud.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/liveness", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}

			assert.Equal(t, tt.want, tenancy.ClientHost(r))
		})
	}
}

func Test_FromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Host = "localhost:3000"
	r.Header.Set("Origin", "https://backoffice.rifuud.com")

	assert.Equal(t, "backoffice", tenancy.FromRequest(r))
}

func Test_SurfaceCheck(t *testing.T) {
	assert.NoError(t, tenancy.Backoffice.Check("backoffice", false))
	assert.NoError(t, tenancy.Restaurant.Check("restaurant", false))

	assert.ErrorIs(t, tenancy.Backoffice.Check("restaurant", true), tenancy.ErrSubdomainMismatch)
	assert.ErrorIs(t, tenancy.Restaurant.Check("acme", true), tenancy.ErrSubdomainMismatch)

	assert.ErrorIs(t, tenancy.Backoffice.Check(tenancy.Localhost, false), tenancy.ErrSubdomainMismatch)
	assert.NoError(t, tenancy.Backoffice.Check(tenancy.Localhost, true))
	assert.NoError(t, tenancy.Restaurant.Check(tenancy.Localhost, true))
}
