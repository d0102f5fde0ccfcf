package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.DB.Host = "db:5432"
	cfg.DB.Password = "dbpass"
	cfg.RootUser.Username = "root"
	cfg.RootUser.Password = "RootPassword1"
	cfg.Auth.Admin.Secret = "admin-secret"
	cfg.Auth.Staff.Secret = "staff-secret"
	cfg.Redis.URL = "redis://:pw@redis:6379/0"
	return cfg
}

func Test_CheckConfig(t *testing.T) {
	warnings, err := checkConfig(validConfig())
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func Test_CheckConfigMissing(t *testing.T) {
	var cfg Config

	_, err := checkConfig(cfg)
	require.ErrorIs(t, err, ErrConfiguration)

	for _, key := range []string{"DB_HOST", "ROOT_USERNAME", "ROOT_PASSWORD", "AUTH_ADMIN_SECRET", "AUTH_STAFF_SECRET"} {
		assert.Contains(t, err.Error(), key)
	}
}

func Test_CheckConfigWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.URL = ""
	cfg.Auth.Staff.Secret = cfg.Auth.Admin.Secret
	cfg.Development.AllowLocalhost = true

	warnings, err := checkConfig(cfg)
	require.NoError(t, err)
	assert.Len(t, warnings, 3)
}

func Test_SanitizeConfig(t *testing.T) {
	out := sanitizeConfig(validConfig())

	for _, secret := range []string{"dbpass", "RootPassword1", "admin-secret", "staff-secret", "redis://"} {
		assert.NotContains(t, out, secret)
	}

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "db:5432", cfg.DB.Host)
	assert.Equal(t, "root", cfg.RootUser.Username)
}
