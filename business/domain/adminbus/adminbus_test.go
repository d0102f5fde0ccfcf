package adminbus_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/username"
	"github.com/rifuud/api/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]adminbus.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]adminbus.User)}
}

func (m *memStore) NewWithTx(tx sqldb.CommitRollbacker) (adminbus.Storer, error) {
	return m, nil
}

func (m *memStore) Create(ctx context.Context, usr adminbus.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username.Equal(usr.Username) {
			return adminbus.ErrUniqueUsername
		}
	}
	m.users[usr.ID] = usr

	return nil
}

func (m *memStore) QueryByID(ctx context.Context, userID uuid.UUID) (adminbus.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	usr, ok := m.users[userID]
	if !ok {
		return adminbus.User{}, adminbus.ErrNotFound
	}

	return usr, nil
}

func (m *memStore) QueryByUsername(ctx context.Context, uname string) (adminbus.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username.String() == uname {
			return u, nil
		}
	}

	return adminbus.User{}, adminbus.ErrNotFound
}

func (m *memStore) CountByRole(ctx context.Context, role adminrole.Role) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for _, u := range m.users {
		if u.Role.Equal(role) {
			n++
		}
	}

	return n, nil
}

func newCore(t *testing.T) (*adminbus.Core, *memStore) {
	t.Helper()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "TEST", nil)

	store := newMemStore()
	return adminbus.NewCore(log, store), store
}

// =============================================================================

func Test_EnsureRoot(t *testing.T) {
	ctx := context.Background()
	core, store := newCore(t)

	cfg := adminbus.RootConfig{Username: "root", Password: "Valid1Password"}

	usr, created, err := core.EnsureRoot(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, usr.Role.Equal(adminrole.Root))
	assert.NotEqual(t, "Valid1Password", usr.PasswordHash)
	assert.True(t, password.Verify("Valid1Password", usr.PasswordHash))

	_, created, err = core.EnsureRoot(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	n, err := store.CountByRole(ctx, adminrole.Root)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func Test_EnsureRootInvalidConfig(t *testing.T) {
	ctx := context.Background()

	tests := map[string]adminbus.RootConfig{
		"missing username": {Password: "Valid1Password"},
		"missing password": {Username: "root"},
		"weak password":    {Username: "root", Password: "Staff1pass"},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			core, store := newCore(t)

			_, created, err := core.EnsureRoot(ctx, cfg)
			require.ErrorIs(t, err, adminbus.ErrRootConfig)
			assert.False(t, created)
			assert.Empty(t, store.users)
		})
	}
}

func Test_CreateSecondRoot(t *testing.T) {
	ctx := context.Background()
	core, _ := newCore(t)

	_, _, err := core.EnsureRoot(ctx, adminbus.RootConfig{Username: "root", Password: "Valid1Password"})
	require.NoError(t, err)

	_, err = core.Create(ctx, adminbus.NewUser{
		Username: username.MustParse("another"),
		Role:     adminrole.Root,
		Password: password.Admin.MustParse("Valid1Password"),
	})
	require.ErrorIs(t, err, adminbus.ErrRootExists)
}

func Test_Authenticate(t *testing.T) {
	ctx := context.Background()
	core, _ := newCore(t)

	usr, err := core.Create(ctx, adminbus.NewUser{
		Username: username.MustParse("alice"),
		Role:     adminrole.Admin,
		Password: password.Admin.MustParse("Valid1Password"),
	})
	require.NoError(t, err)

	got, err := core.Authenticate(ctx, "alice", "Valid1Password")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, errWrong := core.Authenticate(ctx, "alice", "Wrong1Password")
	_, errMissing := core.Authenticate(ctx, "nobody", "Valid1Password")

	require.ErrorIs(t, errWrong, adminbus.ErrAuthenticationFailure)
	require.ErrorIs(t, errMissing, adminbus.ErrAuthenticationFailure)
	assert.Equal(t, errWrong.Error(), errMissing.Error())
}

func Test_CreateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	core, _ := newCore(t)

	nu := adminbus.NewUser{
		Username: username.MustParse("alice"),
		Role:     adminrole.Viewer,
		Password: password.Admin.MustParse("Valid1Password"),
	}

	_, err := core.Create(ctx, nu)
	require.NoError(t, err)

	_, err = core.Create(ctx, nu)
	assert.True(t, errors.Is(err, adminbus.ErrUniqueUsername))
}
