package adminbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/username"
)

// User represents a backoffice administrator.
type User struct {
	ID           uuid.UUID
	Username     username.Username
	PasswordHash string
	Role         adminrole.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser contains information needed to create a new administrator.
type NewUser struct {
	Username username.Username
	Role     adminrole.Role
	Password password.Password
}

// RootConfig carries the operator supplied credentials of the Root account.
type RootConfig struct {
	Username string
	Password string
}
