// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingDecidedEvent is published when a gallery owner or administrator
// decides a pending stand booking, either confirming or rejecting it.
// It contains enough information for downstream consumers to log, notify
// the artist, or feed analytics without querying the primary database.
type BookingDecidedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	Decision    string  `json:"decision"` // CONFIRMED or REJECTED
	Reason      *string `json:"reason,omitempty"`
	ArtistID    uint64  `json:"artist_id"`
	StandID     uint64  `json:"stand_id"`
	StandNumber string  `json:"stand_number"`
	EventID     uint64  `json:"event_id"`
	EventTitle  string  `json:"event_title"`
	GalleryID   uint64  `json:"gallery_id"`
	GalleryName string  `json:"gallery_name"`
	DecidedBy   uint64  `json:"decided_by"`
	DecidedAt   string  `json:"decided_at"`
}
