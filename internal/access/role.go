// Package access answers identity questions for the booking core: which
// role a caller carries, whether that caller has authority over a
// gallery, and whether the caller's token has been revoked.  The booking
// core consumes this package; it never inspects raw role strings itself.
package access

import "strings"

// Role is a closed set of caller roles.  Unknown role claims parse to
// RoleUnknown and fail every authority check.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleArtist       // requests stand bookings
	RoleOwner        // confirms or rejects bookings for own galleries
	RoleAdmin        // full authority over every gallery
)

// Role claim values as stored in users.role and the JWT "role" claim.
const (
	ClaimArtist = "ARTIST"
	ClaimOwner  = "GALLERY_OWNER"
	ClaimAdmin  = "ADMIN"
)

// ParseRole maps a role claim to a Role.  Comparison is case
// insensitive; anything outside the closed set yields RoleUnknown.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case ClaimArtist:
		return RoleArtist
	case ClaimOwner:
		return RoleOwner
	case ClaimAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// String returns the claim value for the role, or "UNKNOWN".
func (r Role) String() string {
	switch r {
	case RoleArtist:
		return ClaimArtist
	case RoleOwner:
		return ClaimOwner
	case RoleAdmin:
		return ClaimAdmin
	default:
		return "UNKNOWN"
	}
}

// Identity is the caller identity handed to the booking core by the
// transport layer after token validation.
type Identity struct {
	UserID uint64
	Role   Role
}
