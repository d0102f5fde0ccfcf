package auth

// AdminProfile is the view of an authenticated administrator.
type AdminProfile struct {
	Message         string
	UserID          string
	Username        string
	Role            string
	IsAuthenticated bool
}

// StaffProfile is the view of an authenticated restaurant user.
type StaffProfile struct {
	Message             string
	UserID              string
	Username            string
	Role                string
	IsAuthenticated     bool
	RestaurantSubdomain string
}

// AdminProfileFromClaims projects validated claims into a profile. Absent
// claims become empty strings.
func AdminProfileFromClaims(c AdminClaims) AdminProfile {
	return AdminProfile{
		Message:         "AdminUser JWT authentication successful",
		UserID:          c.Subject,
		Username:        c.Username,
		Role:            c.Role,
		IsAuthenticated: true,
	}
}

// StaffProfileFromClaims projects validated claims into a profile. Absent
// claims become empty strings.
func StaffProfileFromClaims(c StaffClaims) StaffProfile {
	return StaffProfile{
		Message:             "RestaurantUser JWT authentication successful",
		UserID:              c.Subject,
		Username:            c.Username,
		Role:                c.Role,
		IsAuthenticated:     true,
		RestaurantSubdomain: c.RestaurantSubdomain,
	}
}
