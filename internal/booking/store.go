package booking

import (
	"context"
	"time"

	"github.com/artishok/stand-booking/internal/model"
)

// StandEvent bundles a stand with the window and container facts of its
// owning event.  The service validates preconditions against this
// snapshot; container references are ids, never embedded records.
type StandEvent struct {
	Stand       model.Stand
	EventID     uint64
	GalleryID   uint64
	EventStatus string
	StartsAt    time.Time
	EndsAt      time.Time
}

// BookingInfo bundles a booking with the stand/event/gallery ids needed
// for authority and window checks.
type BookingInfo struct {
	Booking     model.Booking
	EventID     uint64
	GalleryID   uint64
	EventStatus string
	StartsAt    time.Time
	EndsAt      time.Time
}

// StandStore is the read side of the catalog as seen by the booking
// core.  Implementations return ErrNotFound (possibly wrapped) for
// unknown ids.
type StandStore interface {
	// StandEventInfo resolves a stand and its event window.
	StandEventInfo(ctx context.Context, standID uint64) (*StandEvent, error)

	// EventByID resolves an exhibition event.
	EventByID(ctx context.Context, eventID uint64) (*model.ExhibitionEvent, error)

	// AvailableByEvent returns a point-in-time snapshot of stands under
	// the event whose status is AVAILABLE and which have no active
	// booking, in ascending stand id order.
	AvailableByEvent(ctx context.Context, eventID uint64) ([]model.Stand, error)
}

// BookingStore is the write side of the reservation state.  Every
// mutating method is a single atomic step from the perspective of
// concurrent callers: the MySQL implementation combines a transaction,
// a row lock on the stand and a unique index over active bookings; the
// in-memory test implementation serializes on a mutex.
type BookingStore interface {
	// CreatePending checks that no active booking exists for the stand
	// and inserts a new PENDING booking, indivisibly.  Losing racers
	// get ErrConflict.
	CreatePending(ctx context.Context, standID, artistID uint64) (*model.Booking, error)

	// Info loads a booking together with its container ids and event
	// window.
	Info(ctx context.Context, bookingID uint64) (*BookingInfo, error)

	// Confirm atomically moves the booking PENDING→CONFIRMED and the
	// stand AVAILABLE→BOOKED.  Both writes succeed or neither does.
	// Returns ErrInvalidState when the booking is no longer PENDING and
	// ErrConflict when the stand is already BOOKED.
	Confirm(ctx context.Context, bookingID, standID uint64) (*model.Booking, error)

	// Reject moves the booking PENDING→CANCELLED recording the reason.
	// The stand is untouched: a PENDING booking never marked it BOOKED.
	Reject(ctx context.Context, bookingID uint64, reason string) (*model.Booking, error)

	// Cancel moves an active booking to CANCELLED; when it had been
	// CONFIRMED the stand reverts to AVAILABLE in the same atomic step.
	Cancel(ctx context.Context, bookingID, standID uint64) (*model.Booking, error)
}
