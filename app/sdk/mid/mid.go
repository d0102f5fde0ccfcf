// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	trKey
	subdomainKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims of either realm from the context.
func GetClaims(ctx context.Context) (auth.Claims, error) {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return nil, errors.New("claims not found in context")
	}

	return v, nil
}

// GetAdminClaims returns the AdminUser claims from the context.
func GetAdminClaims(ctx context.Context) (auth.AdminClaims, error) {
	v, ok := ctx.Value(claimKey).(auth.AdminClaims)
	if !ok {
		return auth.AdminClaims{}, errors.New("admin claims not found in context")
	}

	return v, nil
}

// GetStaffClaims returns the RestaurantUser claims from the context.
func GetStaffClaims(ctx context.Context) (auth.StaffClaims, error) {
	v, ok := ctx.Value(claimKey).(auth.StaffClaims)
	if !ok {
		return auth.StaffClaims{}, errors.New("restaurant user claims not found in context")
	}

	return v, nil
}

func setSubdomain(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, subdomainKey, label)
}

// GetSubdomain returns the tenant label resolved from the request host.
func GetSubdomain(ctx context.Context) string {
	v, ok := ctx.Value(subdomainKey).(string)
	if !ok {
		return ""
	}

	return v
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
