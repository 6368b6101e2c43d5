package handler

// This file defines HTTP handlers for gallery owners (and administrators)
// deciding pending stand bookings. Confirm moves booking and stand together;
// reject requires a reason and leaves the stand untouched. Each decision is
// published to the booking.decided queue after commit; a publish failure is
// logged and ignored, it must never undo the decision.

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/artishok/stand-booking/internal/booking"
	"github.com/artishok/stand-booking/internal/metrics"
	"github.com/artishok/stand-booking/internal/model"
	"github.com/artishok/stand-booking/internal/queue"
	"github.com/artishok/stand-booking/internal/repository"
	queue_publisher "github.com/artishok/stand-booking/internal/service"

	mw "github.com/artishok/stand-booking/internal/middleware"
)

// OwnerBookingHandler groups the booking service and repositories for
// owner decision endpoints.
type OwnerBookingHandler struct {
	Service   *booking.Service
	Bookings  *repository.BookingRepo
	Galleries *repository.GalleryRepo
	Events    *repository.EventRepo
}

// NewOwnerBookingHandler constructs an OwnerBookingHandler. All
// dependencies must be non-nil.
func NewOwnerBookingHandler(svc *booking.Service, bookings *repository.BookingRepo, galleries *repository.GalleryRepo, events *repository.EventRepo) *OwnerBookingHandler {
	if svc == nil || bookings == nil || galleries == nil || events == nil {
		panic("nil dependency passed to NewOwnerBookingHandler")
	}
	return &OwnerBookingHandler{Service: svc, Bookings: bookings, Galleries: galleries, Events: events}
}

type rejectReq struct {
	Reason string `json:"reason"`
}

// Confirm handles POST /v1/owner/bookings/:id/confirm. The booking must
// be PENDING and belong to a gallery the caller has authority over.
func (h *OwnerBookingHandler) Confirm(c echo.Context) error {
	bookingID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	approver := mw.CurrentIdentity(c)
	if approver.UserID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	b, err := h.Service.Confirm(c.Request().Context(), bookingID, approver)
	if err != nil {
		return bookingError(c, err)
	}
	metrics.BookingDecisions.WithLabelValues("confirmed").Inc()
	h.publishDecision(c.Request().Context(), b, model.BookingConfirmed, nil, approver.UserID)
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Reject handles POST /v1/owner/bookings/:id/reject. A non-empty reason
// is mandatory; it is stored on the booking and forwarded to the artist
// through the decision event.
func (h *OwnerBookingHandler) Reject(c echo.Context) error {
	bookingID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	approver := mw.CurrentIdentity(c)
	if approver.UserID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	reason := strings.TrimSpace(req.Reason)

	b, err := h.Service.Reject(c.Request().Context(), bookingID, approver, reason)
	if err != nil {
		return bookingError(c, err)
	}
	metrics.BookingDecisions.WithLabelValues("rejected").Inc()
	h.publishDecision(c.Request().Context(), b, "REJECTED", &reason, approver.UserID)
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// PendingInbox handles GET /v1/owner/bookings/pending. It returns every
// PENDING booking across the caller's galleries, oldest first.
func (h *OwnerBookingHandler) PendingInbox(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListPendingForOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"count": len(items),
	})
}

// EventBookings handles GET /v1/owner/events/:id/bookings. It lists all
// bookings under the event when the caller owns its gallery. An
// optional ?status= query narrows the list.
func (h *OwnerBookingHandler) EventBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.BookingPending, model.BookingConfirmed, model.BookingCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	items, err := h.Bookings.ListByEventForOwner(c.Request().Context(), eventID, ownerID, status)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"count": len(items),
	})
}

// publishDecision assembles a BookingDecidedEvent and publishes it in
// the background. Lookups and the publish run on a detached context so
// a slow broker cannot stall the HTTP response.
func (h *OwnerBookingHandler) publishDecision(reqCtx context.Context, b *model.Booking, decision string, reason *string, decidedBy uint64) {
	info, err := h.Bookings.Info(reqCtx, b.ID)
	if err != nil {
		log.Warn().Err(err).Uint64("booking_id", b.ID).Msg("decision event: load booking info failed")
		return
	}
	se, err := h.Bookings.StandEventInfo(reqCtx, b.StandID)
	if err != nil {
		log.Warn().Err(err).Uint64("booking_id", b.ID).Msg("decision event: load stand failed")
		return
	}
	ev := queue.BookingDecidedEvent{
		BookingID:   b.ID,
		Decision:    decision,
		Reason:      reason,
		ArtistID:    b.ArtistID,
		StandID:     b.StandID,
		StandNumber: se.Stand.StandNumber,
		EventID:     info.EventID,
		GalleryID:   info.GalleryID,
		DecidedBy:   decidedBy,
		DecidedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if e, err := h.Events.GetByID(reqCtx, info.EventID); err == nil {
		ev.EventTitle = e.Title
	}
	if g, err := h.Galleries.GetByID(reqCtx, info.GalleryID); err == nil {
		ev.GalleryName = g.Name
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingDecided(ctx, ev)
	}()
}
