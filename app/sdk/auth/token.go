package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/staffbus"
)

// GenerateToken signs a token for the principal under the realm. The
// principal must be an adminbus.User for RealmAdmin and a staffbus.User for
// RealmStaff.
func (a *Auth) GenerateToken(r Realm, principal any) (string, error) {
	rlm, exists := a.realms[r]
	if !exists {
		return "", fmt.Errorf("realm %q: %w", r, ErrRealmNotConfigured)
	}

	if rlm.cfg.Secret == "" {
		return "", fmt.Errorf("realm %q: %w", r, ErrRealmNotConfigured)
	}

	now := a.now()

	registered := jwt.RegisteredClaims{
		Issuer:    rlm.cfg.Issuer,
		Audience:  jwt.ClaimStrings{rlm.cfg.Audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(rlm.cfg.Expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	var claims jwt.Claims

	switch p := principal.(type) {
	case adminbus.User:
		if r != RealmAdmin {
			return "", fmt.Errorf("admin user for realm %q: %w", r, ErrRealmMismatch)
		}

		registered.Subject = p.ID.String()
		claims = AdminClaims{
			RegisteredClaims: registered,
			Username:         p.Username.String(),
			Role:             p.Role.String(),
		}

	case staffbus.User:
		if r != RealmStaff {
			return "", fmt.Errorf("restaurant user for realm %q: %w", r, ErrRealmMismatch)
		}

		role := NoRole
		if rl, ok := p.Role.Role(); ok {
			role = rl.String()
		}

		registered.Subject = p.ID.String()
		claims = StaffClaims{
			RegisteredClaims:    registered,
			Username:            p.Username.String(),
			Role:                role,
			RestaurantID:        p.RestaurantID.String(),
			RestaurantSubdomain: p.RestaurantSubdomain.String(),
			UserType:            StaffUserType,
		}

	default:
		return "", fmt.Errorf("principal %T: %w", principal, ErrRealmMismatch)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	str, err := token.SignedString([]byte(rlm.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Validate reports whether the token is valid for the realm.
func (a *Auth) Validate(r Realm, token string) bool {
	_, ok := a.Decode(r, token)
	return ok
}

// Decode validates the token for the realm and returns its claims. It
// checks the signature, that the method is HS256, the issuer, the audience,
// the expiry with no leeway and the userType marker.
func (a *Auth) Decode(r Realm, token string) (Claims, bool) {
	rlm, exists := a.realms[r]
	if !exists || rlm.cfg.Secret == "" {
		return nil, false
	}

	keyFunc := func(t *jwt.Token) (any, error) {
		return []byte(rlm.cfg.Secret), nil
	}

	var tc tokenClaims
	tkn, err := rlm.parser.ParseWithClaims(token, &tc, keyFunc)
	if err != nil || !tkn.Valid {
		return nil, false
	}

	return tc.toClaims(r)
}

// Authenticate processes the bearer header value and returns the claims of
// the realm.
func (a *Auth) Authenticate(ctx context.Context, r Realm, bearerToken string) (Claims, error) {
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, fmt.Errorf("expected authorization header format: Bearer <token>: %w", ErrInvalidToken)
	}

	claims, ok := a.Decode(r, parts[1])
	if !ok {
		a.log.Info(ctx, "**Authenticate-FAILED**", "realm", r)
		return nil, fmt.Errorf("realm %q: %w", r, ErrInvalidToken)
	}

	return claims, nil
}
