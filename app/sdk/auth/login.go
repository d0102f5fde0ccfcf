package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/app/sdk/metrics"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/types/subdomain"
)

// LoginAdmin verifies the administrator credentials and returns an AdminUser
// token. An unknown username and a wrong password produce the same error.
func (a *Auth) LoginAdmin(ctx context.Context, uname string, pass string) (string, error) {
	key := throttleKey(RealmAdmin, "", uname)

	if err := a.checkThrottle(ctx, RealmAdmin, key); err != nil {
		return "", err
	}

	usr, err := a.adminBus.Authenticate(ctx, uname, pass)
	if err != nil {
		if errors.Is(err, adminbus.ErrAuthenticationFailure) {
			a.loginFailed(ctx, RealmAdmin, key)
			return "", invalidCredentials()
		}

		metrics.AddLogin(ctx, RealmAdmin.String(), metrics.LoginError)
		return "", errs.NewAPI(errs.InternalOnlyLog, errs.APIDatabase, errs.FriendlyInternal, fmt.Errorf("authenticate: %w", err))
	}

	token, err := a.GenerateToken(RealmAdmin, usr)
	if err != nil {
		metrics.AddLogin(ctx, RealmAdmin.String(), metrics.LoginError)
		return "", configurationError(err)
	}

	a.loginSucceeded(ctx, RealmAdmin, key)

	return token, nil
}

// LoginStaff verifies the credentials of a user of the restaurant named by
// sub and returns a RestaurantUser token. The username is looked up only
// inside that restaurant. The subdomain typed at login is matched without
// regard to case or surrounding space.
func (a *Auth) LoginStaff(ctx context.Context, uname string, pass string, sub string) (string, error) {
	sub = strings.ToLower(strings.TrimSpace(sub))
	key := throttleKey(RealmStaff, sub, uname)

	if err := a.checkThrottle(ctx, RealmStaff, key); err != nil {
		return "", err
	}

	tenant, err := subdomain.Parse(sub)
	if err != nil {
		a.loginFailed(ctx, RealmStaff, key)
		return "", invalidCredentials()
	}

	usr, err := a.staffBus.Authenticate(ctx, uname, pass, tenant)
	if err != nil {
		if errors.Is(err, staffbus.ErrAuthenticationFailure) {
			a.loginFailed(ctx, RealmStaff, key)
			return "", invalidCredentials()
		}

		metrics.AddLogin(ctx, RealmStaff.String(), metrics.LoginError)
		return "", errs.NewAPI(errs.InternalOnlyLog, errs.APIDatabase, errs.FriendlyInternal, fmt.Errorf("authenticate: %w", err))
	}

	if !usr.RestaurantActive {
		metrics.AddLogin(ctx, RealmStaff.String(), metrics.LoginDisabled)
		return "", errs.NewAPI(errs.PermissionDenied, errs.APIRestaurantDisabled, errs.FriendlyRestaurantDisabled, ErrRestaurantDisabled)
	}

	if !usr.Active {
		metrics.AddLogin(ctx, RealmStaff.String(), metrics.LoginDisabled)
		return "", errs.NewAPI(errs.PermissionDenied, errs.APIAccountDisabled, errs.FriendlyAccountDisabled, ErrAccountDisabled)
	}

	token, err := a.GenerateToken(RealmStaff, usr)
	if err != nil {
		metrics.AddLogin(ctx, RealmStaff.String(), metrics.LoginError)
		return "", configurationError(err)
	}

	a.loginSucceeded(ctx, RealmStaff, key)

	return token, nil
}

// =============================================================================

func invalidCredentials() *errs.Error {
	return errs.NewAPI(errs.Unauthenticated, errs.APIInvalidCredentials, errs.FriendlyInvalidCredentials, ErrInvalidCredentials)
}

func configurationError(err error) *errs.Error {
	return errs.NewAPI(errs.InternalOnlyLog, errs.APIConfiguration, errs.FriendlyConfiguration, fmt.Errorf("generate token: %w", err))
}

func throttleKey(r Realm, sub string, uname string) string {
	return fmt.Sprintf("login:%s:%s:%s", r, strings.ToLower(sub), strings.ToLower(uname))
}

// checkThrottle refuses the attempt once the limiter says so. Limiter
// failures are logged and the attempt proceeds.
func (a *Auth) checkThrottle(ctx context.Context, r Realm, key string) error {
	if a.limiter == nil {
		return nil
	}

	allowed, err := a.limiter.Allowed(ctx, key)
	if err != nil {
		a.log.Error(ctx, "login throttle", "realm", r, "ERROR", err)
		return nil
	}

	if !allowed {
		metrics.AddLogin(ctx, r.String(), metrics.LoginThrottled)
		return errs.NewAPI(errs.ResourceExhausted, errs.APITooManyAttempts, errs.FriendlyTooManyAttempts, ErrTooManyAttempts)
	}

	return nil
}

func (a *Auth) loginFailed(ctx context.Context, r Realm, key string) {
	metrics.AddLogin(ctx, r.String(), metrics.LoginInvalid)

	if a.limiter == nil {
		return
	}

	if err := a.limiter.Failed(ctx, key); err != nil {
		a.log.Error(ctx, "login throttle", "realm", r, "ERROR", err)
	}
}

func (a *Auth) loginSucceeded(ctx context.Context, r Realm, key string) {
	metrics.AddLogin(ctx, r.String(), metrics.LoginSuccess)

	if a.limiter == nil {
		return
	}

	if err := a.limiter.Reset(ctx, key); err != nil {
		a.log.Error(ctx, "login throttle", "realm", r, "ERROR", err)
	}
}
