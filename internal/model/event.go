package model

import "time"

// Exhibition event status values.  Events are created as DRAFT, become
// bookable once the owner submits them (ACTIVE) and are FINISHED after
// their end date.  Only ACTIVE events accept stand bookings.
const (
	EventDraft    = "DRAFT"
	EventActive   = "ACTIVE"
	EventFinished = "FINISHED"
)

// ExhibitionEvent represents a time-bounded exhibition hosted by a
// gallery.  Stands belong to an event through its hall maps; bookings
// are only legal inside the event window.  This struct corresponds to a
// row in the `exhibition_events` table.
//
// Fields:
//  ID          – primary key identifier.
//  GalleryID   – gallery hosting the event.
//  Title       – event title.
//  Description – optional free-form description.
//  StartsAt    – when the exhibition opens.
//  EndsAt      – when the exhibition closes (must be after StartsAt).
//  Status      – lifecycle state (DRAFT, ACTIVE, FINISHED).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type ExhibitionEvent struct {
	ID          uint64    // exhibition_events.id
	GalleryID   uint64    // exhibition_events.gallery_id
	Title       string    // exhibition_events.title
	Description *string   // exhibition_events.description (nullable)
	StartsAt    time.Time // exhibition_events.starts_at
	EndsAt      time.Time // exhibition_events.ends_at
	Status      string    // exhibition_events.status
	CreatedAt   time.Time // exhibition_events.created_at
	UpdatedAt   time.Time // exhibition_events.updated_at
}
