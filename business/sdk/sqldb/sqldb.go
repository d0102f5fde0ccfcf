// Package sqldb provides support for access the database.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/foundation/logger"
	"github.com/rifuud/api/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
)

// lib/pq errorCodeNames
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	undefinedTable      = "42P01"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound     = sql.ErrNoRows
	ErrUndefinedTable = errors.New("undefined table")
)

// ErrDBDuplicatedEntry is returned when a unique constraint is violated. Column
// carries the name of the violated constraint.
type ErrDBDuplicatedEntry struct {
	Column string
}

func (e ErrDBDuplicatedEntry) Error() string {
	return fmt.Sprintf("duplicated entry: %s", e.Column)
}

// ErrDBForeignKey is returned when a write is refused by a foreign key,
// either because the parent row is missing or because child rows still
// reference it.
type ErrDBForeignKey struct {
	Constraint string
}

func (e ErrDBForeignKey) Error() string {
	return fmt.Sprintf("foreign key violation: %s", e.Constraint)
}

// Config is the required properties to use the database.
type Config struct {
	User         string
	Password     string
	Host         string
	Name         string
	Schema       string
	MaxIdleConns int
	MaxOpenConns int
	DisableTLS   bool
}

// Open knows how to open a database connection based on the configuration.
func Open(cfg Config) (*sqlx.DB, error) {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")
	if cfg.Schema != "" {
		q.Set("search_path", cfg.Schema)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host,
		Path:     cfg.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open("pgx", u.String())
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	return db, nil
}

// StatusCheck returns nil if it can successfully talk to the database. It
// returns a non-nil error otherwise.
func StatusCheck(ctx context.Context, db *sqlx.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	for attempts := 1; ; attempts++ {
		if err := db.PingContext(ctx); err == nil {
			break
		}

		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Run a simple query to determine connectivity.
	// Running this query forces a round trip through the database.
	const q = `SELECT true`
	var tmp bool
	return db.QueryRowContext(ctx, q).Scan(&tmp)
}

// ExecContext is a helper function to execute a CUD operation with
// logging and tracing.
func ExecContext(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string) error {
	return NamedExecContext(ctx, log, db, query, struct{}{})
}

// NamedExecContext is a helper function to execute a CUD operation with
// logging and tracing where field replacement is necessary. Argument values
// are never logged since they carry password hashes.
func NamedExecContext(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any) (err error) {
	defer func() {
		if err != nil {
			log.Info(ctx, "database.NamedExecContext", "query", query, "ERROR", err)
		}
	}()

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.exec", attribute.String("query", query))
	defer span.End()

	if _, err := sqlx.NamedExecContext(ctx, db, query, data); err != nil {
		return mapError(err)
	}

	return nil
}

// QueryStruct is a helper function for executing queries that return a
// single value to be unmarshalled into a struct type where field replacement
// is not necessary.
func QueryStruct(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, dest any) error {
	return NamedQueryStruct(ctx, log, db, query, struct{}{}, dest)
}

// NamedQueryStruct is a helper function for executing queries that return a
// single value to be unmarshalled into a struct type where field replacement
// is necessary.
func NamedQueryStruct(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any, dest any) (err error) {
	log.Debug(ctx, "database.NamedQueryStruct", "query", query)

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.querystruct", attribute.String("query", query))
	defer span.End()

	rows, err := sqlx.NamedQueryContext(ctx, db, query, data)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return ErrDBNotFound
	}

	if err := rows.StructScan(dest); err != nil {
		return err
	}

	return nil
}

// NamedQuerySlice is a helper function for executing queries that return a
// collection of data to be unmarshalled into a slice where field replacement
// is necessary.
func NamedQuerySlice[T any](ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any, dest *[]T) (err error) {
	log.Debug(ctx, "database.NamedQuerySlice", "query", query)

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.queryslice", attribute.String("query", query))
	defer span.End()

	rows, err := sqlx.NamedQueryContext(ctx, db, query, data)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	var slice []T
	for rows.Next() {
		v := new(T)
		if err := rows.StructScan(v); err != nil {
			return err
		}
		slice = append(slice, *v)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	*dest = slice

	return nil
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case undefinedTable:
		return ErrUndefinedTable
	case uniqueViolation:
		return ErrDBDuplicatedEntry{Column: pgErr.ConstraintName}
	case foreignKeyViolation:
		return ErrDBForeignKey{Constraint: pgErr.ConstraintName}
	}

	return err
}
