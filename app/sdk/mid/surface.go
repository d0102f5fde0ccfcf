package mid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/app/sdk/tenancy"
	"github.com/rifuud/api/business/sdk/web"
)

// RequireSurface refuses requests whose resolved tenant label does not
// belong to the surface. The label is stored in the context.
func RequireSurface(surface tenancy.Surface, allowLocalhost bool) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			label := tenancy.FromRequest(r)

			if err := surface.Check(label, allowLocalhost); err != nil {
				return errs.NewAPI(errs.InvalidArgument, errs.APIInvalidSubdomain, errs.FriendlyInvalidSubdomain, fmt.Errorf("%s: %w", label, err))
			}

			ctx = setSubdomain(ctx, label)

			return next(ctx, r)
		}

		return h
	}

	return m
}
