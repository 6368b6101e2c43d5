package handler

// This file defines the administrator moderation endpoints for galleries.
// Administrators review the PENDING queue and approve or reject each
// gallery; only APPROVED galleries can host exhibition events.

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/model"
	"github.com/artishok/stand-booking/internal/repository"
)

// AdminGalleryHandler bundles the repositories for moderation endpoints.
type AdminGalleryHandler struct {
	Galleries *repository.GalleryRepo
}

// NewAdminGalleryHandler constructs an AdminGalleryHandler.
func NewAdminGalleryHandler(galleries *repository.GalleryRepo) *AdminGalleryHandler {
	if galleries == nil {
		panic("nil repository passed to NewAdminGalleryHandler")
	}
	return &AdminGalleryHandler{Galleries: galleries}
}

// PendingGalleries handles GET /v1/admin/galleries/pending.
func (h *AdminGalleryHandler) PendingGalleries(c echo.Context) error {
	galleries, err := h.Galleries.ListByStatus(c.Request().Context(), model.GalleryPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load galleries"})
	}
	out := make([]galleryResp, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, toGalleryResp(g))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// ApproveGallery handles POST /v1/admin/galleries/:id/approve.
func (h *AdminGalleryHandler) ApproveGallery(c echo.Context) error {
	return h.moderate(c, model.GalleryApproved)
}

// RejectGallery handles POST /v1/admin/galleries/:id/reject.
func (h *AdminGalleryHandler) RejectGallery(c echo.Context) error {
	return h.moderate(c, model.GalleryRejected)
}

func (h *AdminGalleryHandler) moderate(c echo.Context, status string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if err := h.Galleries.Moderate(ctx, id, status); err != nil {
		switch err {
		case repository.ErrGalleryNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gallery not found"})
		case repository.ErrInvalidState:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "gallery is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "moderation failed"})
	}
	g, err := h.Galleries.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gallery"})
	}
	return c.JSON(http.StatusOK, toGalleryResp(g))
}
