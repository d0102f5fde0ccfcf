package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/rifuud/api/api/cmd/build/all"
	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/app/sdk/debug"
	"github.com/rifuud/api/app/sdk/mux"
	"github.com/rifuud/api/app/sdk/ratelimit"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/adminbus/stores/admindb"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/restaurantbus/stores/restaurantcache"
	"github.com/rifuud/api/business/domain/restaurantbus/stores/restaurantdb"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/domain/staffbus/stores/staffdb"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/foundation/logger"
	"github.com/rifuud/api/foundation/otel"
)

var build = "develop"

func main() {
	var log *logger.Logger

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			log.Info(ctx, "******* SEND ALERT *******")
		},
	}

	log = logger.NewWithEvents(os.Stdout, logger.LevelInfo, "RIFUUD-API", otel.GetTraceID, events)

	// -------------------------------------------------------------------------

	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// -------------------------------------------------------------------------
	// Configuration

	var cfg Config

	cfg.Version.Build = build
	cfg.Version.Desc = "Rifuud API"

	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	warnings, err := checkConfig(cfg)
	for _, w := range warnings {
		log.Warn(ctx, "startup", "config", w)
	}
	if err != nil {
		return err
	}

	// -------------------------------------------------------------------------
	// App Info & Config Logging

	log.Info(ctx, "startup", "version", cfg.Version)
	log.Info(ctx, "startup", "config", sanitizeConfig(cfg))

	// -------------------------------------------------------------------------
	// App Starting

	log.Info(ctx, "starting service", "version", cfg.Version.Build)
	defer log.Info(ctx, "shutdown complete")

	log.BuildInfo(ctx)

	expvar.NewString("build").Set(cfg.Version.Build)

	// -------------------------------------------------------------------------
	// Database Support

	log.Info(ctx, "startup", "status", "initializing database support", "hostport", cfg.DB.Host)

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		Schema:       cfg.DB.Schema,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}

	defer db.Close()

	// -------------------------------------------------------------------------
	// Business Support

	adminBus := adminbus.NewCore(log, admindb.NewStore(log, db))
	restaurantBus := restaurantbus.NewCore(log, restaurantcache.NewStore(log, restaurantdb.NewStore(log, db), cfg.Cache.TTL))
	staffBus := staffbus.NewCore(log, staffdb.NewStore(log, db))

	// -------------------------------------------------------------------------
	// Root Bootstrap

	log.Info(ctx, "startup", "status", "ensuring root user")

	if _, _, err := adminBus.EnsureRoot(ctx, adminbus.RootConfig{
		Username: cfg.RootUser.Username,
		Password: cfg.RootUser.Password,
	}); err != nil {
		return fmt.Errorf("ensuring root user: %w", err)
	}

	// -------------------------------------------------------------------------
	// Login Throttle Support

	var limiter auth.Limiter
	var rds *redis.Client

	switch cfg.Redis.URL {
	case "":
		log.Info(ctx, "startup", "status", "login throttle disabled")

	default:
		log.Info(ctx, "startup", "status", "initializing login throttle support")

		rds, err = ratelimit.Open(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}

		defer rds.Close()

		l, err := ratelimit.New(rds, ratelimit.Config{
			MaxAttempts: cfg.Redis.MaxAttempts,
			Window:      cfg.Redis.Window,
		})
		if err != nil {
			return fmt.Errorf("constructing limiter: %w", err)
		}

		limiter = l
	}

	// -------------------------------------------------------------------------
	// Auth Support

	log.Info(ctx, "startup", "status", "initializing authentication support")

	ath, err := auth.New(auth.Config{
		Log:      log,
		AdminBus: adminBus,
		StaffBus: staffBus,
		Admin: auth.RealmConfig{
			Secret:   cfg.Auth.Admin.Secret,
			Issuer:   cfg.Auth.Admin.Issuer,
			Audience: cfg.Auth.Admin.Audience,
			Expiry:   cfg.Auth.Admin.Expiry,
		},
		Staff: auth.RealmConfig{
			Secret:   cfg.Auth.Staff.Secret,
			Issuer:   cfg.Auth.Staff.Issuer,
			Audience: cfg.Auth.Staff.Audience,
			Expiry:   cfg.Auth.Staff.Expiry,
		},
		Limiter: limiter,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	// -------------------------------------------------------------------------
	// Start Tracing Support

	log.Info(ctx, "startup", "status", "initializing tracing support")

	tempoHost := cfg.Tempo.Host
	if !cfg.Tempo.Enabled {
		tempoHost = ""
	}

	traceProvider, teardown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.Tempo.ServiceName,
		Host:        tempoHost,
		ExcludedRoutes: map[string]struct{}{
			"/v1/liveness":  {},
			"/v1/readiness": {},
		},
		Probability: cfg.Tempo.Probability,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	defer teardown(context.Background())

	tracer := traceProvider.Tracer(cfg.Tempo.ServiceName)

	// -------------------------------------------------------------------------
	// Start Debug Service

	go func() {
		log.Info(ctx, "startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

		if err := http.ListenAndServe(cfg.Web.DebugHost, debug.Mux()); err != nil {
			log.Error(ctx, "shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "msg", err)
		}
	}()

	// -------------------------------------------------------------------------
	// Start API Service

	log.Info(ctx, "startup", "status", "initializing V1 API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	cfgMux := mux.Config{
		Build:  cfg.Version.Build,
		Log:    log,
		DB:     db,
		Redis:  rds,
		Tracer: tracer,
		Auth:   ath,
		BusConfig: mux.BusConfig{
			RestaurantBus: restaurantBus,
			StaffBus:      staffBus,
		},
		AllowLocalhost: cfg.Development.AllowLocalhost,
	}

	webAPI := mux.WebAPI(cfgMux,
		all.Routes(),
		mux.WithCORS(cfg.Web.CORSAllowedOrigins),
	)

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      webAPI,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     logger.NewStdLogger(log, logger.LevelError),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func sanitizeConfig(cfg Config) string {
	cfg.DB.Password = "[MASKED]"
	cfg.Auth.Admin.Secret = "[MASKED]"
	cfg.Auth.Staff.Secret = "[MASKED]"
	cfg.RootUser.Password = "[MASKED]"
	if cfg.Redis.URL != "" {
		cfg.Redis.URL = "[MASKED]"
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(data)
}
