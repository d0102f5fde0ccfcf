package mid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/foundation/logger"
)

// Logger writes information about the request to the logs.
func Logger(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = fmt.Sprintf("%s?%s", path, r.URL.RawQuery)
			}

			log.Info(ctx, "request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)
			err := checkIsError(resp)

			var statusCode = http.StatusOK
			switch {
			case err != nil:
				statusCode = http.StatusInternalServerError
				if appErr := errs.GetError(err); appErr != nil {
					statusCode = appErr.HTTPStatus()
				}

			case resp == nil:
				statusCode = http.StatusNoContent
			}

			log.Info(ctx, "request completed", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr,
				"statuscode", statusCode, "since", time.Since(now).String())

			return resp
		}

		return h
	}

	return m
}
