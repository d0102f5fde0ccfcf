// Package username represents the login name of a principal.
package username

import (
	"fmt"
	"regexp"
)

// Maximum lengths per principal kind.
const (
	AdminMaxLength = 50
	StaffMaxLength = 255
)

// Username is a login name without spaces.
type Username struct {
	value string
}

// String returns the value of the username.
func (u Username) String() string {
	return u.value
}

// Equal provides support for the go-cmp package and testing.
func (u Username) Equal(u2 Username) bool {
	return u.value == u2.value
}

// MarshalText provides support for logging and any marshal needs.
func (u Username) MarshalText() ([]byte, error) {
	return []byte(u.value), nil
}

// =============================================================================

var usernameRegEx = regexp.MustCompile(`^[A-Za-z0-9._@+-]+$`)

// Parse returns a staff username. Use ParseAdmin for backoffice accounts.
func Parse(value string) (Username, error) {
	return parse(value, StaffMaxLength)
}

// ParseAdmin returns an admin username, which is held to a shorter limit.
func ParseAdmin(value string) (Username, error) {
	return parse(value, AdminMaxLength)
}

// MustParse parses a staff username and panics on error.
func MustParse(value string) Username {
	u, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return u
}

func parse(value string, max int) (Username, error) {
	if len(value) < 3 || len(value) > max || !usernameRegEx.MatchString(value) {
		return Username{}, fmt.Errorf("invalid username %q", value)
	}

	return Username{value}, nil
}
