// This program performs administrative tasks for the rifuud service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/adminbus/stores/admindb"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/restaurantbus/stores/restaurantdb"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/domain/staffbus/stores/staffdb"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/foundation/logger"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"rifuud"`
		Schema       string `envconfig:"DB_SCHEMA"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		AdminSecret string        `envconfig:"AUTH_ADMIN_SECRET"`
		AdminExpiry time.Duration `envconfig:"AUTH_ADMIN_EXPIRY"`
		StaffSecret string        `envconfig:"AUTH_STAFF_SECRET"`
		StaffExpiry time.Duration `envconfig:"AUTH_STAFF_EXPIRY"`
	}
}

const usage = `Usage: admin <command> [flags]

Commands:
  create-admin       create a backoffice administrator
  create-restaurant  create a restaurant
  create-user        create a user inside a restaurant
  hash-password      print the stored hash of a password
  gen-token          sign a token for an existing user`

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log, os.Args[1:]); err != nil {
		log.Error(ctx, "admin", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, args []string) error {
	if len(args) < 1 {
		fmt.Println(usage)
		return nil
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	cmd, args := args[0], args[1:]

	// hash-password never touches the database.
	if cmd == "hash-password" {
		return hashPassword(os.Stdout, args)
	}

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

	adminBus := adminbus.NewCore(log, admindb.NewStore(log, db))
	staffBus := staffbus.NewCore(log, staffdb.NewStore(log, db))

	ath, err := auth.New(auth.Config{
		Log:      log,
		AdminBus: adminBus,
		StaffBus: staffBus,
		Admin:    auth.RealmConfig{Secret: cfg.Auth.AdminSecret, Expiry: cfg.Auth.AdminExpiry},
		Staff:    auth.RealmConfig{Secret: cfg.Auth.StaffSecret, Expiry: cfg.Auth.StaffExpiry},
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	t := tool{
		out:           os.Stdout,
		adminBus:      adminBus,
		restaurantBus: restaurantbus.NewCore(log, restaurantdb.NewStore(log, db)),
		staffBus:      staffBus,
		auth:          ath,
	}

	return t.exec(ctx, cmd, args)
}

type tool struct {
	out           io.Writer
	adminBus      *adminbus.Core
	restaurantBus *restaurantbus.Core
	staffBus      *staffbus.Core
	auth          *auth.Auth
}

func (t tool) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "create-admin":
		return t.createAdmin(ctx, args)
	case "create-restaurant":
		return t.createRestaurant(ctx, args)
	case "create-user":
		return t.createUser(ctx, args)
	case "gen-token":
		return t.genToken(ctx, args)
	case "hash-password":
		return hashPassword(t.out, args)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

//go run api/tooling/admin/main.go create-admin -username ops.team -password "OpsPassword123" -role Admin
//go run api/tooling/admin/main.go create-restaurant -name "Acme Grill" -subdomain acme
//go run api/tooling/admin/main.go create-user -subdomain acme -username bob -password Secret123 -first-name Bob -last-name Stone -role Manager
//AUTH_STAFF_SECRET=dev go run api/tooling/admin/main.go gen-token -realm staff -subdomain acme -username bob
