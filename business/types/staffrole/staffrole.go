// Package staffrole represents the optional role of a restaurant user.
package staffrole

import (
	"database/sql"
	"fmt"
)

// The set of roles that can be used.
var (
	Owner   = newRole("Owner")
	Manager = newRole("Manager")
	Cashier = newRole("Cashier")
	Waiter  = newRole("Waiter")
	Chef    = newRole("Chef")
)

var roles = make(map[string]Role)

// Role represents a restaurant user role.
type Role struct {
	value string
}

func newRole(role string) Role {
	r := Role{role}
	roles[role] = r
	return r
}

// String returns the name of the role.
func (r Role) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r Role) Equal(r2 Role) bool {
	return r.value == r2.value
}

// Parse parses the string value and returns a role if one exists.
func Parse(value string) (Role, error) {
	role, exists := roles[value]
	if !exists {
		return Role{}, fmt.Errorf("invalid staff role %q", value)
	}

	return role, nil
}

// =============================================================================

// Null is a role that may be absent.
type Null struct {
	role  Role
	valid bool
}

// NewNull wraps a known role.
func NewNull(r Role) Null {
	return Null{role: r, valid: true}
}

// Role returns the role and whether one is set.
func (n Null) Role() (Role, bool) {
	return n.role, n.valid
}

// Valid reports whether a role is set.
func (n Null) Valid() bool {
	return n.valid
}

// String returns the role name, or the empty string when no role is set.
func (n Null) String() string {
	if !n.valid {
		return ""
	}

	return n.role.value
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.valid == n2.valid && n.role.Equal(n2.role)
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.role.value,
		Valid:  n.valid,
	}
}

// ParseNull returns an empty Null for the empty string, otherwise the role.
func ParseNull(value string) (Null, error) {
	if value == "" {
		return Null{}, nil
	}

	r, err := Parse(value)
	if err != nil {
		return Null{}, err
	}

	return NewNull(r), nil
}

// MustParseNull parses the value and panics on error.
func MustParseNull(value string) Null {
	n, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return n
}
