// Package admindb contains administrator related CRUD functionality.
package admindb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/sdk/sqldb"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/foundation/logger"
)

// Store manages the set of APIs for administrator database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (adminbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new administrator into the database.
func (s *Store) Create(ctx context.Context, usr adminbus.User) error {
	const q = `
	INSERT INTO admin_users
		(admin_user_id, username, password_hash, role, created_at, updated_at)
	VALUES
		(:admin_user_id, :username, :password_hash, :role, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBUser(usr)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			switch dupErr.Column {
			case "uq_admin_users_username":
				return fmt.Errorf("namedexeccontext: %w", adminbus.ErrUniqueUsername)
			case "uq_admin_users_root":
				return fmt.Errorf("namedexeccontext: %w", adminbus.ErrRootExists)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified administrator from the database.
func (s *Store) QueryByID(ctx context.Context, userID uuid.UUID) (adminbus.User, error) {
	data := struct {
		ID string `db:"admin_user_id"`
	}{
		ID: userID.String(),
	}

	const q = `
	SELECT
		admin_user_id, username, password_hash, role, created_at, updated_at
	FROM
		admin_users
	WHERE
		admin_user_id = :admin_user_id`

	var dbUsr userDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbUsr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return adminbus.User{}, fmt.Errorf("db: %w", adminbus.ErrNotFound)
		}
		return adminbus.User{}, fmt.Errorf("db: %w", err)
	}

	return toBusUser(dbUsr)
}

// QueryByUsername gets the specified administrator from the database.
func (s *Store) QueryByUsername(ctx context.Context, uname string) (adminbus.User, error) {
	data := struct {
		Username string `db:"username"`
	}{
		Username: uname,
	}

	const q = `
	SELECT
		admin_user_id, username, password_hash, role, created_at, updated_at
	FROM
		admin_users
	WHERE
		username = :username`

	var dbUsr userDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbUsr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return adminbus.User{}, fmt.Errorf("db: %w", adminbus.ErrNotFound)
		}
		return adminbus.User{}, fmt.Errorf("db: %w", err)
	}

	return toBusUser(dbUsr)
}

// CountByRole returns the number of administrators holding role.
func (s *Store) CountByRole(ctx context.Context, role adminrole.Role) (int, error) {
	data := struct {
		Role string `db:"role"`
	}{
		Role: role.String(),
	}

	const q = `
	SELECT
		count(1)
	FROM
		admin_users
	WHERE
		role = :role`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}
