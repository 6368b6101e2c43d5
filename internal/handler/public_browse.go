// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to discover approved galleries, active exhibitions and
// their floor plans. Sensitive fields (owner IDs, moderation state, timestamps)
// are filtered from responses.

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/model"
	"github.com/artishok/stand-booking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
	Galleries *repository.GalleryRepo
	Events    *repository.EventRepo
	HallMaps  *repository.HallMapRepo
	Stands    *repository.StandRepo
}

// PublicGallery represents a gallery exposed via the public API. It contains
// only safe fields.
type PublicGallery struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
}

// PublicEvent represents an exhibition event in list responses.
type PublicEvent struct {
	ID        uint64    `json:"id"`
	GalleryID uint64    `json:"gallery_id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
}

// PublicEventDetail is the detailed event response, including the hosting
// gallery and the event's hall maps.
type PublicEventDetail struct {
	ID          uint64         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	StartsAt    time.Time      `json:"starts_at"`
	EndsAt      time.Time      `json:"ends_at"`
	Gallery     *PublicGallery `json:"gallery,omitempty"`
	HallMaps    []hallMapResp  `json:"hall_maps"`
}

// GetPublicGalleries returns all approved galleries. Response JSON contains
// an "items" array of PublicGallery.
func (h *PublicHandler) GetPublicGalleries(c echo.Context) error {
	ctx := c.Request().Context()
	galleries, err := h.Galleries.ListByStatus(ctx, model.GalleryApproved)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicGallery, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, PublicGallery{ID: g.ID, Name: g.Name, Address: g.Address, ContactEmail: g.ContactEmail})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicEvents lists exhibitions open for booking, ordered by start date.
func (h *PublicHandler) GetPublicEvents(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.Events.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicEvent, 0, len(events))
	for _, e := range events {
		out = append(out, PublicEvent{ID: e.ID, GalleryID: e.GalleryID, Title: e.Title, StartsAt: e.StartsAt, EndsAt: e.EndsAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicEvent returns details of a single active exhibition, including
// its gallery and hall maps. Draft events are hidden from the public.
func (h *PublicHandler) GetPublicEvent(c echo.Context) error {
	ctx := c.Request().Context()
	eventID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	e, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if e.Status == model.EventDraft {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}

	resp := PublicEventDetail{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		HallMaps:    []hallMapResp{},
	}
	if g, err := h.Galleries.GetByID(ctx, e.GalleryID); err == nil {
		resp.Gallery = &PublicGallery{ID: g.ID, Name: g.Name, Address: g.Address, ContactEmail: g.ContactEmail}
	}
	if maps, err := h.HallMaps.ListByEvent(ctx, e.ID); err == nil {
		for _, m := range maps {
			resp.HallMaps = append(resp.HallMaps, hallMapResp{ID: m.ID, EventID: m.EventID, Name: m.Name})
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPublicEventStands lists every stand of an exhibition with its current
// availability so clients can render the floor plan.
func (h *PublicHandler) GetPublicEventStands(c echo.Context) error {
	ctx := c.Request().Context()
	eventID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if _, err := h.Events.GetByID(ctx, eventID); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	stands, err := h.Stands.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]standResp, 0, len(stands))
	for _, s := range stands {
		out = append(out, toStandResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}
