// Package auth issues and validates the JWTs of the two realms, logs
// principals in and decides what an authenticated administrator may do.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/foundation/logger"
)

// Set of errors returned by the auth package.
var (
	ErrRealmNotConfigured = errors.New("realm has no signing secret")
	ErrRealmMismatch      = errors.New("principal does not belong to realm")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrRestaurantDisabled = errors.New("restaurant is disabled")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrForbidden          = errors.New("attempted action is not allowed")
)

// Realm names one of the two independent token families.
type Realm string

// The set of realms.
const (
	RealmAdmin Realm = "AdminUser"
	RealmStaff Realm = "RestaurantUser"
)

// String returns the name of the realm.
func (r Realm) String() string {
	return string(r)
}

// RealmConfig holds the signing parameters of one realm. Zero values for
// Issuer, Audience and Expiry fall back to the realm defaults.
type RealmConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

const defaultIssuer = "RifuudApi"

var realmDefaults = map[Realm]RealmConfig{
	RealmAdmin: {Issuer: defaultIssuer, Audience: "RifuudApiAdminUsers", Expiry: 24 * time.Hour},
	RealmStaff: {Issuer: defaultIssuer, Audience: "RifuudApiRestaurantUsers", Expiry: 8 * time.Hour},
}

// Limiter counts failed logins. A nil Limiter disables throttling.
type Limiter interface {
	Allowed(ctx context.Context, key string) (bool, error)
	Failed(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// Config represents information required to initialize auth.
type Config struct {
	Log      *logger.Logger
	AdminBus *adminbus.Core
	StaffBus *staffbus.Core
	Admin    RealmConfig
	Staff    RealmConfig
	Limiter  Limiter
	Now      func() time.Time
}

type realm struct {
	cfg    RealmConfig
	parser *jwt.Parser
}

// Auth is used to authenticate clients.
type Auth struct {
	log      *logger.Logger
	adminBus *adminbus.Core
	staffBus *staffbus.Core
	limiter  Limiter
	now      func() time.Time
	realms   map[Realm]realm
	enforcer *casbin.SyncedEnforcer
}

// New creates an Auth to support authentication and authorization. A realm
// without a secret is accepted here; issuing a token for it fails with
// ErrRealmNotConfigured.
func New(cfg Config) (*Auth, error) {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	enforcer, err := newEnforcer()
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}

	a := Auth{
		log:      cfg.Log,
		adminBus: cfg.AdminBus,
		staffBus: cfg.StaffBus,
		limiter:  cfg.Limiter,
		now:      now,
		realms: map[Realm]realm{
			RealmAdmin: newRealm(RealmAdmin, cfg.Admin, now),
			RealmStaff: newRealm(RealmStaff, cfg.Staff, now),
		},
		enforcer: enforcer,
	}

	return &a, nil
}

// Realm returns the effective configuration of the realm.
func (a *Auth) Realm(r Realm) RealmConfig {
	return a.realms[r].cfg
}

func newRealm(r Realm, cfg RealmConfig, now func() time.Time) realm {
	def := realmDefaults[r]

	if cfg.Issuer == "" {
		cfg.Issuer = def.Issuer
	}
	if cfg.Audience == "" {
		cfg.Audience = def.Audience
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = def.Expiry
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)

	return realm{
		cfg:    cfg,
		parser: parser,
	}
}
