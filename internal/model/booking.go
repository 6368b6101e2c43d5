package model

import "time"

// Booking status values.  A booking is "active" while PENDING or
// CONFIRMED; CANCELLED is terminal.  For any stand at most one active
// booking may exist at any instant.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking records an artist's request to hold an exhibition stand.  It
// is created PENDING by the artist, then either CONFIRMED or CANCELLED
// by a gallery owner, or withdrawn (CANCELLED) by the artist.  The
// stand reference is immutable after creation.  This struct corresponds
// to a row in the `bookings` table.
//
// Fields:
//  ID        – primary key identifier.
//  StandID   – stand being requested (immutable).
//  ArtistID  – artist who created the request.
//  Status    – state of the booking (PENDING, CONFIRMED, CANCELLED).
//  Reason    – rejection reason recorded by the owner, if any.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	StandID   uint64    // bookings.stand_id
	ArtistID  uint64    // bookings.artist_id
	Status    string    // bookings.status
	Reason    *string   // bookings.reason (nullable)
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}

// Active reports whether the booking currently excludes other bookings
// on the same stand.
func (b *Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
