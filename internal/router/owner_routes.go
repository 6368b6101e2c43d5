package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/handler"
	"github.com/artishok/stand-booking/internal/middleware"
)

// RegisterOwner registers gallery owner endpoints under /v1/owner.
// All routes require a valid JWT and the GALLERY_OWNER or ADMIN role.
func RegisterOwner(
	e *echo.Echo,
	galleries *handler.OwnerGalleryHandler,
	events *handler.OwnerEventHandler,
	stands *handler.OwnerStandHandler,
	bookings *handler.OwnerBookingHandler,
	jwtSecret string,
	denied middleware.Denylist,
) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret, denied),
		middleware.RequireRole(access.ClaimOwner, access.ClaimAdmin),
	)

	// ---- Galleries ----
	g.POST("/galleries", galleries.CreateGallery)
	g.GET("/galleries", galleries.MyGalleries)
	g.GET("/galleries/:id", galleries.GetGallery)

	// ---- Exhibition events ----
	g.POST("/galleries/:id/events", events.CreateEvent)
	g.GET("/galleries/:id/events", events.GalleryEvents)
	g.POST("/events/:id/submit", events.SubmitEvent)

	// ---- Hall maps and stands ----
	g.POST("/events/:id/hall-maps", stands.CreateHallMap)
	g.GET("/events/:id/hall-maps", stands.EventHallMaps)
	g.POST("/hall-maps/:id/stands", stands.CreateStand)
	g.POST("/hall-maps/:id/stands/grid", stands.CreateStandGrid)
	g.GET("/hall-maps/:id/stands", stands.HallMapStands)

	// ---- Booking decisions ----
	g.GET("/bookings/pending", bookings.PendingInbox)
	g.GET("/events/:id/bookings", bookings.EventBookings)
	g.POST("/bookings/:id/confirm", bookings.Confirm)
	g.POST("/bookings/:id/reject", bookings.Reject)
}
