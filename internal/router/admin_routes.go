package router

// This file registers administrator routes for gallery moderation.  Admins
// review galleries registered by owners and either approve or reject them.
// They are kept separate from the owner routes to keep concerns isolated.

import (
	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/handler"
	"github.com/artishok/stand-booking/internal/middleware"
)

// RegisterAdmin registers moderation routes under /v1/admin.  All routes
// require a JWT token as well as the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminGalleryHandler, jwtSecret string, denied middleware.Denylist) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret, denied),
		middleware.RequireRole(access.ClaimAdmin),
	)
	// Moderation queue, oldest first
	g.GET("/galleries/pending", h.PendingGalleries)
	// Approve or reject a pending gallery
	g.POST("/galleries/:id/approve", h.ApproveGallery)
	g.POST("/galleries/:id/reject", h.RejectGallery)
}
