// Package name represents a display name in the system.
package name

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxLength = 255

// Name represents a display name: a restaurant name, a first or a last name.
type Name struct {
	value string
}

// String returns the value of the name.
func (n Name) String() string {
	return n.value
}

// Equal provides support for the go-cmp package and testing.
func (n Name) Equal(n2 Name) bool {
	return n.value == n2.value
}

// MarshalText provides support for logging and any marshal needs.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// =============================================================================

// Parse trims the value and returns a name when it holds between 1 and 255
// characters.
func Parse(value string) (Name, error) {
	v := strings.TrimSpace(value)

	if n := utf8.RuneCountInString(v); n == 0 || n > maxLength {
		return Name{}, fmt.Errorf("invalid name %q", value)
	}

	return Name{v}, nil
}

// MustParse parses the string value and returns a name if the value complies
// with the rules for a name. If an error occurs the function panics.
func MustParse(value string) Name {
	n, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return n
}
