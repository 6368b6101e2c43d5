package router

import (
	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/handler"
	"github.com/artishok/stand-booking/internal/middleware"
)

// RegisterArtist registers artist-scoped endpoints under /v1.  All routes
// require a valid JWT and the ARTIST or ADMIN role.  Artists can request
// a stand, cancel their own bookings and list their booking history.
func RegisterArtist(e *echo.Echo, h *handler.ArtistBookingHandler, jwtSecret string, denied middleware.Denylist) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret, denied),
		middleware.RequireRole(access.ClaimArtist, access.ClaimAdmin),
	)
	// Note: GET /v1/events/:id/stands/available is registered on the public
	// router so that guests can browse availability before signing up.
	g.POST("/bookings", h.RequestBooking)
	g.POST("/bookings/:id/cancel", h.CancelBooking)
	g.GET("/my-bookings", h.MyBookings)
	g.GET("/my-bookings/active", h.MyActiveBookings)
}
