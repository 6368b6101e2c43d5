package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/model"
)

// Service coordinates all reservation state transitions.  It is the
// only component that writes booking status or stand status; callers
// reach it through the HTTP handlers.  Service methods never retry –
// every failure is surfaced synchronously with enough context for the
// caller to decide.
type Service struct {
	stands   StandStore
	bookings BookingStore
	policy   access.Policy
	clock    Clock
}

// NewService constructs a Service.  All dependencies must be non-nil;
// pass SystemClock() outside of tests.
func NewService(stands StandStore, bookings BookingStore, policy access.Policy, clock Clock) *Service {
	if stands == nil || bookings == nil || policy == nil || clock == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{stands: stands, bookings: bookings, policy: policy, clock: clock}
}

// Request creates a PENDING booking for the artist on the given stand.
// The stand's event must be ACTIVE and not yet ended.  The availability
// check and the insert are one atomic storage step; when two artists
// race for the same stand exactly one wins and the rest get
// ErrConflict.
func (s *Service) Request(ctx context.Context, standID, artistID uint64) (*model.Booking, error) {
	info, err := s.stands.StandEventInfo(ctx, standID)
	if err != nil {
		return nil, err
	}
	if info.EventStatus != model.EventActive {
		return nil, fmt.Errorf("event %d is %s, not open for booking: %w", info.EventID, info.EventStatus, ErrInvalidState)
	}
	if !s.clock.Now().Before(info.EndsAt) {
		return nil, fmt.Errorf("event %d already ended: %w", info.EventID, ErrInvalidState)
	}
	return s.bookings.CreatePending(ctx, standID, artistID)
}

// Confirm approves a PENDING booking on behalf of a gallery owner or an
// administrator.  The booking moves to CONFIRMED and the stand to
// BOOKED in one atomic step; partial application is unreachable.
func (s *Service) Confirm(ctx context.Context, bookingID uint64, approver access.Identity) (*model.Booking, error) {
	info, err := s.bookings.Info(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ok, err := s.policy.HasAuthorityOver(ctx, approver, info.GalleryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no authority over gallery %d: %w", info.GalleryID, ErrForbidden)
	}
	if info.Booking.Status != model.BookingPending {
		return nil, fmt.Errorf("booking %d is %s, not PENDING: %w", bookingID, info.Booking.Status, ErrInvalidState)
	}
	if !s.clock.Now().Before(info.EndsAt) {
		return nil, fmt.Errorf("event %d already ended: %w", info.EventID, ErrInvalidState)
	}
	return s.bookings.Confirm(ctx, bookingID, info.Booking.StandID)
}

// Reject declines a PENDING booking with a mandatory reason.  The stand
// status is unaffected – a PENDING booking never held it.
func (s *Service) Reject(ctx context.Context, bookingID uint64, approver access.Identity, reason string) (*model.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("rejection reason is required: %w", ErrValidation)
	}
	info, err := s.bookings.Info(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ok, err := s.policy.HasAuthorityOver(ctx, approver, info.GalleryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no authority over gallery %d: %w", info.GalleryID, ErrForbidden)
	}
	if info.Booking.Status != model.BookingPending {
		return nil, fmt.Errorf("booking %d is %s, not PENDING: %w", bookingID, info.Booking.Status, ErrInvalidState)
	}
	return s.bookings.Reject(ctx, bookingID, reason)
}

// Cancel withdraws a booking on behalf of the artist who created it.
// Allowed while the booking is PENDING or CONFIRMED and the event has
// not started.  A CONFIRMED booking releases its stand back to
// AVAILABLE in the same atomic step.
func (s *Service) Cancel(ctx context.Context, bookingID, artistID uint64) (*model.Booking, error) {
	info, err := s.bookings.Info(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if info.Booking.ArtistID != artistID {
		return nil, fmt.Errorf("booking %d belongs to another artist: %w", bookingID, ErrForbidden)
	}
	if !info.Booking.Active() {
		return nil, fmt.Errorf("booking %d is already %s: %w", bookingID, info.Booking.Status, ErrInvalidState)
	}
	if !s.clock.Now().Before(info.StartsAt) {
		return nil, fmt.Errorf("event %d already started: %w", info.EventID, ErrInvalidState)
	}
	return s.bookings.Cancel(ctx, bookingID, info.Booking.StandID)
}

// AvailableStands returns a snapshot of bookable stands under the
// event: status AVAILABLE and no active booking, in stable stand id
// order.  Callers must re-query to observe later transitions.
func (s *Service) AvailableStands(ctx context.Context, eventID uint64) ([]model.Stand, error) {
	if _, err := s.stands.EventByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.stands.AvailableByEvent(ctx, eventID)
}
