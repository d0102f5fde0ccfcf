package mid

import (
	"context"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/foundation/logger"
	"github.com/rifuud/api/foundation/otel"
)

// Errors handles errors coming out of the call chain. Every error is logged
// with an error id that is also returned to the client. Errors marked
// InternalOnlyLog reach the client with a generic message.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			_, span := otel.AddSpan(ctx, "app.sdk.mid.error")
			span.RecordError(err)
			defer span.End()

			appErr := errs.GetError(err)
			if appErr == nil {
				appErr = errs.New(errs.InternalOnlyLog, err)
			}

			appErr.ErrorID = uuid.NewString()

			log.Error(ctx, "handled error during request",
				"err", err,
				"errorId", appErr.ErrorID,
				"apiCode", appErr.APICode,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if appErr.Code == errs.InternalOnlyLog {
				appErr = &errs.Error{
					Code:     errs.Internal,
					APICode:  appErr.APICode,
					Message:  "Internal Server Error",
					Friendly: appErr.Friendly,
					ErrorID:  appErr.ErrorID,
				}
			}

			return appErr
		}

		return h
	}

	return m
}
