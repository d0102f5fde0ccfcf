package mid

import (
	"context"
	"net/http"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/business/types/actions"
	"github.com/rifuud/api/business/types/resource"
)

// Authorize checks the administrator's role may perform the request method
// on the resource. It must run after Authenticate for the admin realm.
func Authorize(ath *auth.Auth, res resource.Resource) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims, err := GetAdminClaims(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			act, err := actions.FromHTTPMethod(r.Method)
			if err != nil {
				return errs.New(errs.FailedPrecondition, err)
			}

			if err := ath.Authorize(ctx, claims, res, act); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
