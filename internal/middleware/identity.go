package middleware

// identity.go defines helper functions shared across middleware files and
// handlers. They extract the authenticated user from the claims JWTAuth
// stored in the Echo context.

import (
	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/access"
)

// UserID extracts the authenticated user's id from the context. JWT
// numeric claims decode as float64, so both paths are handled. Returns
// 0 when no user is authenticated.
func UserID(c echo.Context) uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	}
	return 0
}

// CurrentIdentity builds the access.Identity of the authenticated
// caller. Unknown or missing roles yield access.RoleUnknown, which
// every authority check refuses.
func CurrentIdentity(c echo.Context) access.Identity {
	role, _ := c.Get("role").(string)
	return access.Identity{
		UserID: UserID(c),
		Role:   access.ParseRole(role),
	}
}
