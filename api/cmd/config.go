package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrConfiguration is returned when a value the service cannot start
// without is missing.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	Version struct {
		Build string `json:"build"`
		Desc  string `json:"desc"`
	} `json:"version"`

	Web struct {
		ReadTimeout        time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"5s"`
		WriteTimeout       time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"10s"`
		IdleTimeout        time.Duration `envconfig:"WEB_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout    time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"20s"`
		APIHost            string        `envconfig:"WEB_API_HOST" default:"0.0.0.0:3000"`
		DebugHost          string        `envconfig:"WEB_DEBUG_HOST" default:"0.0.0.0:3010"`
		CORSAllowedOrigins []string      `envconfig:"WEB_CORS_ALLOWED_ORIGINS" default:"*"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST"`
		Name         string `envconfig:"DB_NAME" default:"rifuud"`
		Schema       string `envconfig:"DB_SCHEMA"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Tempo struct {
		Host        string  `envconfig:"TEMPO_HOST" default:"tempo:4317"`
		ServiceName string  `envconfig:"TEMPO_SERVICE_NAME" default:"RIFUUD-API"`
		Probability float64 `envconfig:"TEMPO_PROBABILITY" default:"0.05"`
		Enabled     bool    `envconfig:"TEMPO_ENABLED" default:"false"`
	}
	Auth struct {
		Admin struct {
			Secret   string        `envconfig:"AUTH_ADMIN_SECRET"`
			Issuer   string        `envconfig:"AUTH_ADMIN_ISSUER"`
			Audience string        `envconfig:"AUTH_ADMIN_AUDIENCE"`
			Expiry   time.Duration `envconfig:"AUTH_ADMIN_EXPIRY"`
		}
		Staff struct {
			Secret   string        `envconfig:"AUTH_STAFF_SECRET"`
			Issuer   string        `envconfig:"AUTH_STAFF_ISSUER"`
			Audience string        `envconfig:"AUTH_STAFF_AUDIENCE"`
			Expiry   time.Duration `envconfig:"AUTH_STAFF_EXPIRY"`
		}
	}
	Development struct {
		AllowLocalhost bool `envconfig:"DEV_ALLOW_LOCALHOST" default:"false"`
	}
	RootUser struct {
		Username string `envconfig:"ROOT_USERNAME"`
		Password string `envconfig:"ROOT_PASSWORD"`
	}
	Redis struct {
		URL         string        `envconfig:"REDIS_URL"`
		MaxAttempts int           `envconfig:"REDIS_MAX_ATTEMPTS" default:"5"`
		Window      time.Duration `envconfig:"REDIS_WINDOW" default:"15m"`
	}
	Cache struct {
		TTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	}
}

// checkConfig reports every missing critical value in a single error and
// returns warnings for the optional ones left empty.
func checkConfig(cfg Config) ([]string, error) {
	var missing []string
	var warnings []string

	critical := []struct {
		key   string
		value string
	}{
		{"DB_HOST", cfg.DB.Host},
		{"ROOT_USERNAME", cfg.RootUser.Username},
		{"ROOT_PASSWORD", cfg.RootUser.Password},
		{"AUTH_ADMIN_SECRET", cfg.Auth.Admin.Secret},
		{"AUTH_STAFF_SECRET", cfg.Auth.Staff.Secret},
	}

	for _, c := range critical {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.key)
		}
	}

	if cfg.Redis.URL == "" {
		warnings = append(warnings, "REDIS_URL not set, login throttle disabled")
	}

	if cfg.Auth.Admin.Secret != "" && cfg.Auth.Admin.Secret == cfg.Auth.Staff.Secret {
		warnings = append(warnings, "AUTH_ADMIN_SECRET and AUTH_STAFF_SECRET are equal")
	}

	if cfg.Tempo.Enabled && cfg.Tempo.Host == "" {
		warnings = append(warnings, "TEMPO_HOST not set, tracing disabled")
	}

	if cfg.Development.AllowLocalhost {
		warnings = append(warnings, "DEV_ALLOW_LOCALHOST enabled, localhost can reach every surface")
	}

	if len(missing) > 0 {
		return warnings, fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
	}

	return warnings, nil
}
