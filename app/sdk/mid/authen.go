package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/sdk/web"
)

// Authenticate validates the bearer token against the realm and stores the
// claims in the context.
func Authenticate(ath *auth.Auth, realm auth.Realm) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			claims, err := ath.Authenticate(ctx, realm, authStr)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			ctx = setClaims(ctx, claims)

			return next(ctx, r)
		}

		return h
	}

	return m
}
