package auth

import "github.com/golang-jwt/jwt/v5"

// StaffUserType marks tokens of the restaurant realm.
const StaffUserType = "RestaurantUser"

// NoRole is placed in the role claim of a restaurant user without a role.
const NoRole = "NoRole"

// Claims is the decoded content of a validated token. It is implemented
// only by AdminClaims and StaffClaims.
type Claims interface {
	Realm() Realm
	claims()
}

// AdminClaims represents the claims of an AdminUser token.
type AdminClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Realm implements Claims.
func (AdminClaims) Realm() Realm { return RealmAdmin }

func (AdminClaims) claims() {}

// StaffClaims represents the claims of a RestaurantUser token.
type StaffClaims struct {
	jwt.RegisteredClaims
	Username            string `json:"username"`
	Role                string `json:"role"`
	RestaurantID        string `json:"restaurantId"`
	RestaurantSubdomain string `json:"restaurantSubdomain"`
	UserType            string `json:"userType"`
}

// Realm implements Claims.
func (StaffClaims) Realm() Realm { return RealmStaff }

func (StaffClaims) claims() {}

// tokenClaims is the union of both claim sets, used while parsing so the
// userType marker can be checked for presence in either realm.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username            string  `json:"username"`
	Role                string  `json:"role"`
	RestaurantID        string  `json:"restaurantId"`
	RestaurantSubdomain string  `json:"restaurantSubdomain"`
	UserType            *string `json:"userType,omitempty"`
}

func (tc tokenClaims) toClaims(r Realm) (Claims, bool) {
	switch r {
	case RealmAdmin:
		if tc.UserType != nil {
			return nil, false
		}

		c := AdminClaims{
			RegisteredClaims: tc.RegisteredClaims,
			Username:         tc.Username,
			Role:             tc.Role,
		}
		return c, true

	case RealmStaff:
		if tc.UserType == nil || *tc.UserType != StaffUserType {
			return nil, false
		}

		c := StaffClaims{
			RegisteredClaims:    tc.RegisteredClaims,
			Username:            tc.Username,
			Role:                tc.Role,
			RestaurantID:        tc.RestaurantID,
			RestaurantSubdomain: tc.RestaurantSubdomain,
			UserType:            *tc.UserType,
		}
		return c, true
	}

	return nil, false
}
