package staffdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/phone"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/business/types/username"
)

type userDB struct {
	ID                  uuid.UUID      `db:"restaurant_user_id"`
	FirstName           string         `db:"first_name"`
	LastName            string         `db:"last_name"`
	Phone               sql.NullString `db:"phone"`
	Username            string         `db:"username"`
	PasswordHash        string         `db:"password_hash"`
	Role                sql.NullString `db:"role"`
	RestaurantSubdomain string         `db:"restaurant_subdomain"`
	RestaurantID        uuid.UUID      `db:"restaurant_id"`
	RestaurantActive    bool           `db:"restaurant_active"`
	Active              bool           `db:"active"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func toDBUser(bus staffbus.User) userDB {
	return userDB{
		ID:                  bus.ID,
		FirstName:           bus.FirstName.String(),
		LastName:            bus.LastName.String(),
		Phone:               phone.ToSQLNullString(bus.Phone),
		Username:            bus.Username.String(),
		PasswordHash:        bus.PasswordHash,
		Role:                staffrole.ToSQLNullString(bus.Role),
		RestaurantSubdomain: bus.RestaurantSubdomain.String(),
		Active:              bus.Active,
		CreatedAt:           bus.CreatedAt.UTC(),
		UpdatedAt:           bus.UpdatedAt.UTC(),
	}
}

func toBusUser(db userDB) (staffbus.User, error) {
	first, err := name.Parse(db.FirstName)
	if err != nil {
		return staffbus.User{}, fmt.Errorf("parse first name: %w", err)
	}

	last, err := name.Parse(db.LastName)
	if err != nil {
		return staffbus.User{}, fmt.Errorf("parse last name: %w", err)
	}

	ph, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return staffbus.User{}, fmt.Errorf("parse phone: %w", err)
	}

	uname, err := username.Parse(db.Username)
	if err != nil {
		return staffbus.User{}, fmt.Errorf("parse username: %w", err)
	}

	role, err := staffrole.ParseNull(db.Role.String)
	if err != nil {
		return staffbus.User{}, fmt.Errorf("parse role: %w", err)
	}

	sub, err := subdomain.Parse(db.RestaurantSubdomain)
	if err != nil {
		return staffbus.User{}, fmt.Errorf("parse subdomain: %w", err)
	}

	bus := staffbus.User{
		ID:                  db.ID,
		FirstName:           first,
		LastName:            last,
		Phone:               ph,
		Username:            uname,
		PasswordHash:        db.PasswordHash,
		Role:                role,
		RestaurantSubdomain: sub,
		RestaurantID:        db.RestaurantID,
		RestaurantActive:    db.RestaurantActive,
		Active:              db.Active,
		CreatedAt:           db.CreatedAt.In(time.Local),
		UpdatedAt:           db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]staffbus.User, error) {
	bus := make([]staffbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
