package handler

// This file defines HTTP handlers for gallery owners managing their
// galleries. A freshly registered gallery is PENDING until an
// administrator approves it; events cannot be created under it before
// that.

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/model"
	"github.com/artishok/stand-booking/internal/repository"
)

// OwnerGalleryHandler bundles the repositories owners need to manage
// galleries.
type OwnerGalleryHandler struct {
	Galleries *repository.GalleryRepo
}

// NewOwnerGalleryHandler constructs an OwnerGalleryHandler.
func NewOwnerGalleryHandler(galleries *repository.GalleryRepo) *OwnerGalleryHandler {
	if galleries == nil {
		panic("nil repository passed to NewOwnerGalleryHandler")
	}
	return &OwnerGalleryHandler{Galleries: galleries}
}

type createGalleryReq struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
}

type galleryResp struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
}

func toGalleryResp(g *model.Gallery) galleryResp {
	return galleryResp{ID: g.ID, Name: g.Name, Address: g.Address, ContactEmail: g.ContactEmail, Status: g.Status}
}

// CreateGallery handles POST /v1/owner/galleries. The new gallery
// starts in PENDING status awaiting administrator approval.
func (h *OwnerGalleryHandler) CreateGallery(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createGalleryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	g := &model.Gallery{
		OwnerID:      ownerID,
		Name:         req.Name,
		Address:      strings.TrimSpace(req.Address),
		ContactEmail: strings.ToLower(strings.TrimSpace(req.ContactEmail)),
	}
	if err := h.Galleries.Create(c.Request().Context(), g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create gallery failed"})
	}
	return c.JSON(http.StatusCreated, toGalleryResp(g))
}

// MyGalleries handles GET /v1/owner/galleries. It lists the caller's
// galleries in every moderation status.
func (h *OwnerGalleryHandler) MyGalleries(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	galleries, err := h.Galleries.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load galleries"})
	}
	out := make([]galleryResp, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, toGalleryResp(g))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// GetGallery handles GET /v1/owner/galleries/:id for the owning user.
func (h *OwnerGalleryHandler) GetGallery(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	g, err := h.Galleries.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrGalleryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gallery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gallery"})
	}
	return c.JSON(http.StatusOK, toGalleryResp(g))
}
