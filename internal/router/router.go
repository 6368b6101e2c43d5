package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/handler"
	"github.com/artishok/stand-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check used by load balancers and the
// Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, denied middleware.Denylist) {
	// Registration, login and token exchange do not require a session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only re-issues an
	// access token and keeps the refresh token as is.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer access token or a JSON body with a
	// refresh_token; either path revokes the session.  It therefore lives
	// outside the JWT-protected group.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	// Any authenticated role may read its own profile.
	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret, denied),
		middleware.RequireRole(access.ClaimArtist, access.ClaimOwner, access.ClaimAdmin),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  Guests can discover approved galleries, active exhibitions
// and stand availability without a token.  The extra middleware (typically
// the Redis response cache) applies to these routes only: cache keys carry
// no user component, so caching must never cover authenticated responses.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, b *handler.ArtistBookingHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/v1/galleries", p.GetPublicGalleries, mw...)
	e.GET("/v1/events", p.GetPublicEvents, mw...)
	e.GET("/v1/events/:id", p.GetPublicEvent, mw...)
	// Full stand list with availability status for floor plan rendering.
	e.GET("/v1/events/:id/stands", p.GetPublicEventStands, mw...)
	// Only stands that currently hold no PENDING or CONFIRMED booking.
	e.GET("/v1/events/:id/stands/available", b.AvailableStands, mw...)
}
