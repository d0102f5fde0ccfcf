package mid

import (
	"context"
	"net/http"

	"github.com/rifuud/api/app/sdk/tenancy"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Otel starts the otel tracing and stores the trace id in the context.
func Otel(tracer trace.Tracer) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = otel.InjectTracing(ctx, tracer)

			trace.SpanFromContext(ctx).SetAttributes(attribute.String("client.host", tenancy.ClientHost(r)))

			return next(ctx, r)
		}

		return h
	}

	return m
}
