// Package adminbus provides business access to backoffice administrators.
package adminbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/username"
	"github.com/rifuud/api/foundation/logger"
	"github.com/rifuud/api/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound              = errors.New("admin user not found")
	ErrUniqueUsername        = errors.New("username is not unique")
	ErrRootExists            = errors.New("a root user already exists")
	ErrRootConfig            = errors.New("root user configuration is missing or invalid")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, usr User) error
	QueryByID(ctx context.Context, userID uuid.UUID) (User, error)
	QueryByUsername(ctx context.Context, uname string) (User, error)
	CountByRole(ctx context.Context, role adminrole.Role) (int, error)
}

// Core manages the set of APIs for administrator access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs an administrator core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new administrator. Only one account may ever hold the Root
// role. The count below is only a fast path; concurrent creators are stopped
// by the uq_admin_users_root index, which the store reports as ErrRootExists.
func (c *Core) Create(ctx context.Context, nu NewUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.adminbus.create")
	defer span.End()

	if nu.Role.Equal(adminrole.Root) {
		n, err := c.storer.CountByRole(ctx, adminrole.Root)
		if err != nil {
			return User{}, fmt.Errorf("countbyrole: %w", err)
		}

		if n > 0 {
			return User{}, ErrRootExists
		}
	}

	now := time.Now()

	usr := User{
		ID:           uuid.New(),
		Username:     nu.Username,
		PasswordHash: password.Admin.Hash(nu.Password.String()),
		Role:         nu.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storer.Create(ctx, usr); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	return usr, nil
}

// QueryByID finds the administrator by the specified ID.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.adminbus.querybyid")
	defer span.End()

	usr, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return usr, nil
}

// QueryByUsername finds the administrator by username. Usernames are global,
// there is no tenant scoping for administrators.
func (c *Core) QueryByUsername(ctx context.Context, uname string) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.adminbus.querybyusername")
	defer span.End()

	usr, err := c.storer.QueryByUsername(ctx, uname)
	if err != nil {
		return User{}, fmt.Errorf("query: username[%s]: %w", uname, err)
	}

	return usr, nil
}

// Authenticate finds an administrator by username and verifies the
// password. A missing account and a wrong password both return
// ErrAuthenticationFailure.
func (c *Core) Authenticate(ctx context.Context, uname string, pass string) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.adminbus.authenticate")
	defer span.End()

	usr, err := c.QueryByUsername(ctx, uname)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrAuthenticationFailure
		}
		return User{}, err
	}

	if !password.Admin.Verify(pass, usr.PasswordHash) {
		return User{}, ErrAuthenticationFailure
	}

	return usr, nil
}

// EnsureRoot creates the Root account from cfg unless one already exists.
// The boolean reports whether an account was created.
func (c *Core) EnsureRoot(ctx context.Context, cfg RootConfig) (User, bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.adminbus.ensureroot")
	defer span.End()

	n, err := c.storer.CountByRole(ctx, adminrole.Root)
	if err != nil {
		return User{}, false, fmt.Errorf("countbyrole: %w", err)
	}

	if n > 0 {
		c.log.Info(ctx, "root user present, skipping bootstrap")
		return User{}, false, nil
	}

	uname, err := username.ParseAdmin(cfg.Username)
	if err != nil {
		return User{}, false, fmt.Errorf("%w: username: %w", ErrRootConfig, err)
	}

	pass, err := password.Admin.Parse(cfg.Password)
	if err != nil {
		return User{}, false, fmt.Errorf("%w: password: %w", ErrRootConfig, err)
	}

	usr, err := c.Create(ctx, NewUser{
		Username: uname,
		Role:     adminrole.Root,
		Password: pass,
	})
	if err != nil {
		return User{}, false, fmt.Errorf("create root: %w", err)
	}

	c.log.Info(ctx, "root user created", "userID", usr.ID, "username", usr.Username)

	return usr, true, nil
}
