// Package password represents a clear text password together with the
// complexity policies and the salted hash format used to store it.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// SaltSize is the number of random bytes generated for every hash.
const SaltSize = 32

// ErrRequirements is returned when a password does not satisfy a policy.
var ErrRequirements = errors.New("password requirements not met")

// The set of policies, one per principal kind.
var (
	Admin = Policy{name: "admin", minLength: 12}
	Staff = Policy{name: "staff", minLength: 8}
)

// =============================================================================

// Password represents a clear text password that passed a policy.
type Password struct {
	value string
}

// String returns the clear text value.
func (p Password) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText keeps the value out of logs and any marshal output.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("[MASKED]"), nil
}

// =============================================================================

// Policy holds the complexity rules for one kind of principal.
type Policy struct {
	name      string
	minLength int
}

// String returns the name of the policy.
func (pl Policy) String() string {
	return pl.name
}

// MinLength returns the minimum number of characters required.
func (pl Policy) MinLength() int {
	return pl.minLength
}

// Validate reports whether value has at least the minimum length, one upper
// case letter, one lower case letter and one digit, and nothing outside
// [A-Za-z0-9].
func (pl Policy) Validate(value string) bool {
	if len(value) < pl.minLength {
		return false
	}

	var upper, lower, digit bool
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			return false
		}
	}

	return upper && lower && digit
}

// Parse returns a Password when value satisfies the policy.
func (pl Policy) Parse(value string) (Password, error) {
	if !pl.Validate(value) {
		return Password{}, fmt.Errorf("%s policy: %w", pl.name, ErrRequirements)
	}

	return Password{value}, nil
}

// MustParse parses the value and panics if it does not satisfy the policy.
func (pl Policy) MustParse(value string) Password {
	p, err := pl.Parse(value)
	if err != nil {
		panic(err)
	}

	return p
}

// Hash is the realm specific entry point for Hash.
func (pl Policy) Hash(value string) string {
	return Hash(value)
}

// Verify is the realm specific entry point for Verify.
func (pl Policy) Verify(value string, hash string) bool {
	return Verify(value, hash)
}

// =============================================================================

// Hash returns base64(salt) ":" base64(sha256(value || salt)) using a fresh
// random salt.
func Hash(value string) string {
	salt := make([]byte, SaltSize)
	rand.Read(salt)

	return encode(salt, digest(value, salt))
}

// Verify reports whether value matches the stored hash. Malformed hashes
// never match.
func Verify(value string, hash string) bool {
	parts := strings.Split(hash, ":")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	want, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	got := digest(value, salt)

	return subtle.ConstantTimeCompare(got, want) == 1
}

func digest(value string, salt []byte) []byte {
	h := sha256.New()
	h.Write([]byte(value))
	h.Write(salt)

	return h.Sum(nil)
}

func encode(salt []byte, sum []byte) string {
	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(sum)
}
