package handler

// This file defines HTTP handlers for artists working with stand bookings:
// requesting a stand, withdrawing a request and listing their own bookings.
// All reservation state transitions go through the booking service so the
// one-active-booking-per-stand guarantee is enforced in one place.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/booking"
	"github.com/artishok/stand-booking/internal/metrics"
	"github.com/artishok/stand-booking/internal/model"
	"github.com/artishok/stand-booking/internal/repository"
)

// ArtistBookingHandler groups the booking service and the repositories
// needed for artist-facing booking endpoints.
type ArtistBookingHandler struct {
	Service  *booking.Service
	Bookings *repository.BookingRepo
}

// NewArtistBookingHandler constructs an ArtistBookingHandler. All
// dependencies must be non-nil.
func NewArtistBookingHandler(svc *booking.Service, bookings *repository.BookingRepo) *ArtistBookingHandler {
	if svc == nil || bookings == nil {
		panic("nil dependency passed to NewArtistBookingHandler")
	}
	return &ArtistBookingHandler{Service: svc, Bookings: bookings}
}

type requestBookingReq struct {
	StandID uint64 `json:"stand_id"`
}

type bookingResp struct {
	ID       uint64  `json:"id"`
	StandID  uint64  `json:"stand_id"`
	ArtistID uint64  `json:"artist_id"`
	Status   string  `json:"status"`
	Reason   *string `json:"reason,omitempty"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{ID: b.ID, StandID: b.StandID, ArtistID: b.ArtistID, Status: b.Status, Reason: b.Reason}
}

// RequestBooking handles POST /v1/bookings. It creates a PENDING
// booking for the authenticated artist on the requested stand. When two
// artists race for the same stand, exactly one receives 201; the rest
// receive 409 and may pick another stand.
func (h *ArtistBookingHandler) RequestBooking(c echo.Context) error {
	artistID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req requestBookingReq
	if err := c.Bind(&req); err != nil || req.StandID == 0 {
		metrics.BookingRequests.WithLabelValues("error").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stand_id required"})
	}

	b, err := h.Service.Request(c.Request().Context(), req.StandID, artistID)
	if err != nil {
		metrics.BookingRequests.WithLabelValues(requestOutcome(err)).Inc()
		return bookingError(c, err)
	}
	metrics.BookingRequests.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

func requestOutcome(err error) string {
	switch {
	case errors.Is(err, booking.ErrConflict):
		return "conflict"
	case errors.Is(err, booking.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, booking.ErrNotFound):
		return "not_found"
	}
	return "error"
}

// CancelBooking handles POST /v1/bookings/:id/cancel. The artist
// withdraws their own booking; allowed while it is PENDING or CONFIRMED
// and the event has not started. A confirmed booking releases its stand.
func (h *ArtistBookingHandler) CancelBooking(c echo.Context) error {
	artistID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	b, err := h.Service.Cancel(c.Request().Context(), bookingID, artistID)
	if err != nil {
		return bookingError(c, err)
	}
	metrics.BookingDecisions.WithLabelValues("cancelled").Inc()
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// MyBookings handles GET /v1/my-bookings. It lists every booking the
// artist has made, newest first, with stand and event context attached.
// An optional ?status= query narrows the list.
func (h *ArtistBookingHandler) MyBookings(c echo.Context) error {
	artistID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.BookingPending, model.BookingConfirmed, model.BookingCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	items, err := h.Bookings.ListByArtist(c.Request().Context(), artistID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"count": len(items),
	})
}

// MyActiveBookings handles GET /v1/my-bookings/active. It lists the
// artist's confirmed bookings on events that are running and have not
// ended yet.
func (h *ArtistBookingHandler) MyActiveBookings(c echo.Context) error {
	artistID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListActiveByArtist(c.Request().Context(), artistID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"count": len(items),
	})
}

// AvailableStands handles GET /v1/events/:id/stands/available. It
// returns a point-in-time snapshot of bookable stands under the event.
// The route is public: artists browse availability before logging in.
func (h *ArtistBookingHandler) AvailableStands(c echo.Context) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	stands, err := h.Service.AvailableStands(c.Request().Context(), eventID)
	if err != nil {
		return bookingError(c, err)
	}
	out := make([]standResp, 0, len(stands))
	for _, s := range stands {
		out = append(out, toStandResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": out,
		"count": len(out),
	})
}
