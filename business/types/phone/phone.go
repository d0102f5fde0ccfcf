// Package phone represents the optional contact number of a restaurant user.
package phone

import (
	"database/sql"
	"fmt"
	"regexp"
)

// An optional +, then digits, spaces or hyphens, at most 20 characters.
var phoneRegEx = regexp.MustCompile(`^\+?[0-9\s-]{3,19}$`)

// Null represents a phone number that may be absent.
type Null struct {
	value string
	valid bool
}

// String returns the number, or the empty string when absent.
func (n Null) String() string {
	return n.value
}

// Valid reports whether a number is set.
func (n Null) Valid() bool {
	return n.valid
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.value == n2.value && n.valid == n2.valid
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.value,
		Valid:  n.valid,
	}
}

// ParseNull returns an empty Null for the empty string, otherwise the
// number if it complies with the rules for a phone number.
func ParseNull(value string) (Null, error) {
	if value == "" {
		return Null{}, nil
	}

	if !phoneRegEx.MatchString(value) {
		return Null{}, fmt.Errorf("invalid phone %q", value)
	}

	return Null{value, true}, nil
}

// MustParseNull parses the value and panics on error.
func MustParseNull(value string) Null {
	n, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return n
}
