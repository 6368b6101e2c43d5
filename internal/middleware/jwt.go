package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Denylist reports whether an access token id (jti claim) has been
// revoked, e.g. through logout. A nil Denylist disables the check.
type Denylist interface {
	IsDenied(ctx context.Context, jti string) bool
}

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects its claims into the request context.  The provided secret must
// match the one used when issuing tokens.  Handlers behind this middleware
// read the authenticated user via `c.Get("user_id")` and `c.Get("role")`;
// the token id is stored under "jti" so logout can revoke it.  Tokens whose
// id appears on the denylist are rejected even before their natural expiry.
func JWTAuth(secret string, denied Denylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 only; a token signed with any other
			// algorithm is rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			jti, _ := claims["jti"].(string)
			if denied != nil && jti != "" && denied.IsDenied(c.Request().Context(), jti) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token revoked"})
			}

			// Store the subject (user ID), role and token id in the
			// context for handlers and downstream middleware.
			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			c.Set("jti", jti)
			return next(c)
		}
	}
}
