package admindb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/username"
)

type userDB struct {
	ID           uuid.UUID `db:"admin_user_id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func toDBUser(bus adminbus.User) userDB {
	return userDB{
		ID:           bus.ID,
		Username:     bus.Username.String(),
		PasswordHash: bus.PasswordHash,
		Role:         bus.Role.String(),
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusUser(db userDB) (adminbus.User, error) {
	role, err := adminrole.Parse(db.Role)
	if err != nil {
		return adminbus.User{}, fmt.Errorf("parse role: %w", err)
	}

	uname, err := username.ParseAdmin(db.Username)
	if err != nil {
		return adminbus.User{}, fmt.Errorf("parse username: %w", err)
	}

	bus := adminbus.User{
		ID:           db.ID,
		Username:     uname,
		PasswordHash: db.PasswordHash,
		Role:         role,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}
