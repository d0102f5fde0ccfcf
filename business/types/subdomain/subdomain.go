// Package subdomain represents the natural key of a restaurant.
package subdomain

import (
	"fmt"
	"regexp"
)

// Subdomain is a lower case label of 3 to 255 characters drawn from
// [a-z0-9-].
type Subdomain struct {
	value string
}

// String returns the value of the subdomain.
func (s Subdomain) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Subdomain) Equal(s2 Subdomain) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Subdomain) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// IsZero reports whether the subdomain was never set.
func (s Subdomain) IsZero() bool {
	return s.value == ""
}

// =============================================================================

var subdomainRegEx = regexp.MustCompile(`^[a-z0-9-]{3,255}$`)

// Parse parses the string value and returns a subdomain if the value
// complies with the rules. Upper case letters and surrounding space are
// rejected, not folded.
func Parse(value string) (Subdomain, error) {
	if !subdomainRegEx.MatchString(value) {
		return Subdomain{}, fmt.Errorf("invalid subdomain %q", value)
	}

	return Subdomain{value}, nil
}

// MustParse parses the string value and returns a subdomain if the value
// complies with the rules. If an error occurs the function panics.
func MustParse(value string) Subdomain {
	s, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return s
}
