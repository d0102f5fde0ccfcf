// Package checkapp maintains the app layer api for the check domain.
package checkapp

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rifuud/api/app/sdk/errs"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/sdk/web"
	"github.com/rifuud/api/foundation/logger"
)

type app struct {
	build string
	log   *logger.Logger
	db    *sqlx.DB
	redis *redis.Client
}

func newApp(build string, log *logger.Logger, db *sqlx.DB, rds *redis.Client) *app {
	return &app{
		build: build,
		log:   log,
		db:    db,
		redis: rds,
	}
}

// readiness checks if the database is ready and if not will return a 503
// status. The throttle store is checked only when it is configured.
func (a *app) readiness(ctx context.Context, r *http.Request) web.Encoder {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	checks := map[string]string{
		"db":    "ok",
		"redis": "not configured",
	}

	if err := sqldb.StatusCheck(ctx, a.db); err != nil {
		a.log.Info(ctx, "readiness failure", "check", "db", "ERROR", err)
		return errs.Errorf(errs.Unavailable, "database not ready: %s", err)
	}

	if a.redis != nil {
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.log.Info(ctx, "readiness failure", "check", "redis", "ERROR", err)
			return errs.Errorf(errs.Unavailable, "redis not ready: %s", err)
		}
		checks["redis"] = "ok"
	}

	return Readiness{Status: "ok", Checks: checks}
}

// liveness returns simple status info if the service is alive. If the
// app is deployed to a Kubernetes cluster, it will also return pod, node, and
// namespace details via the Downward API. The Kubernetes environment variables
// need to be set within your Pod/Deployment manifest.
func (a *app) liveness(ctx context.Context, r *http.Request) web.Encoder {
	host, err := os.Hostname()
	if err != nil {
		host = "unavailable"
	}

	info := Info{
		Status:     "up",
		Build:      a.build,
		Host:       host,
		Name:       os.Getenv("KUBERNETES_NAME"),
		PodIP:      os.Getenv("KUBERNETES_POD_IP"),
		Node:       os.Getenv("KUBERNETES_NODE_NAME"),
		Namespace:  os.Getenv("KUBERNETES_NAMESPACE"),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}

	return info
}
