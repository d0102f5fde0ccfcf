// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rifuud/api/foundation/otel"
)

var (
	requests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rifuud_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	})

	errorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rifuud_http_errors_total",
		Help: "Total number of HTTP requests that ended in an error.",
	})

	panics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rifuud_http_panics_total",
		Help: "Total number of recovered panics.",
	})

	goroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rifuud_goroutines",
		Help: "Number of goroutines, sampled every 1000 requests.",
	})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rifuud_login_attempts_total",
		Help: "Login attempts by realm and result.",
	}, []string{"realm", "result"})
)

var requestCount atomic.Int64

// Set of login results.
const (
	LoginSuccess   = "success"
	LoginInvalid   = "invalid"
	LoginDisabled  = "disabled"
	LoginThrottled = "throttled"
	LoginError     = "error"
)

// AddGoroutines refreshes the goroutine gauge.
func AddGoroutines(ctx context.Context) int64 {
	g := int64(runtime.NumGoroutine())
	goroutines.Set(float64(g))
	return g
}

// AddRequests increments the request counter and returns the running total.
func AddRequests(ctx context.Context) int64 {
	inc(ctx, requests)
	return requestCount.Add(1)
}

// AddErrors increments the errors counter.
func AddErrors(ctx context.Context) {
	inc(ctx, errorsTotal)
}

// AddPanics increments the panics counter.
func AddPanics(ctx context.Context) {
	inc(ctx, panics)
}

// AddLogin records a login attempt for the realm.
func AddLogin(ctx context.Context, realm string, result string) {
	inc(ctx, logins.WithLabelValues(realm, result))
}

// inc attaches the trace id as an exemplar when the counter supports it.
func inc(ctx context.Context, c prometheus.Counter) {
	if ea, ok := c.(prometheus.ExemplarAdder); ok {
		ea.AddWithExemplar(1, prometheus.Labels{"trace_id": otel.GetTraceID(ctx)})
		return
	}

	c.Inc()
}
