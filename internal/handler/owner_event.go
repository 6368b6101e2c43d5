package handler

// This file defines HTTP handlers for gallery owners managing exhibition
// events. Events can only be created under APPROVED galleries owned by the
// caller, start as DRAFT and must be submitted to ACTIVE before artists can
// book stands.

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/model"
	"github.com/artishok/stand-booking/internal/repository"
)

// OwnerEventHandler bundles repositories for event lifecycle endpoints.
type OwnerEventHandler struct {
	Galleries *repository.GalleryRepo
	Events    *repository.EventRepo
}

// NewOwnerEventHandler constructs an OwnerEventHandler.
func NewOwnerEventHandler(galleries *repository.GalleryRepo, events *repository.EventRepo) *OwnerEventHandler {
	if galleries == nil || events == nil {
		panic("nil repository passed to NewOwnerEventHandler")
	}
	return &OwnerEventHandler{Galleries: galleries, Events: events}
}

type createEventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartsAt    string `json:"starts_at"` // RFC3339
	EndsAt      string `json:"ends_at"`   // RFC3339
}

type eventResp struct {
	ID          uint64  `json:"id"`
	GalleryID   uint64  `json:"gallery_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	Status      string  `json:"status"`
}

func toEventResp(e *model.ExhibitionEvent) eventResp {
	return eventResp{
		ID:          e.ID,
		GalleryID:   e.GalleryID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:      e.EndsAt.UTC().Format(time.RFC3339),
		Status:      e.Status,
	}
}

// CreateEvent handles POST /v1/owner/galleries/:id/events. The gallery
// must belong to the caller and be APPROVED. The event window must be
// coherent: end strictly after start, start in the future.
func (h *OwnerEventHandler) CreateEvent(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	galleryID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC3339"})
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be RFC3339"})
	}
	if !endsAt.After(startsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be after starts_at"})
	}
	if startsAt.Before(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be in the future"})
	}

	ctx := c.Request().Context()
	g, err := h.Galleries.GetByIDAndOwner(ctx, galleryID, ownerID)
	if err != nil {
		if err == repository.ErrGalleryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gallery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gallery"})
	}
	if g.Status != model.GalleryApproved {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "gallery is not approved"})
	}

	e := &model.ExhibitionEvent{
		GalleryID: galleryID,
		Title:     req.Title,
		StartsAt:  startsAt.UTC(),
		EndsAt:    endsAt.UTC(),
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		e.Description = &desc
	}
	if err := h.Events.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, toEventResp(e))
}

// GalleryEvents handles GET /v1/owner/galleries/:id/events for the
// owning user, every status included.
func (h *OwnerEventHandler) GalleryEvents(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	galleryID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.Galleries.GetByIDAndOwner(ctx, galleryID, ownerID); err != nil {
		if err == repository.ErrGalleryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gallery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gallery"})
	}
	events, err := h.Events.ListByGallery(ctx, galleryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// SubmitEvent handles POST /v1/owner/events/:id/submit. It moves a
// DRAFT event to ACTIVE, opening it for stand bookings.
func (h *OwnerEventHandler) SubmitEvent(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if err := h.Events.Submit(ctx, eventID, ownerID); err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrInvalidState:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "event is not draft"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submit failed"})
	}
	e, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}
