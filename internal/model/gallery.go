package model

import "time"

// Gallery status values.  A gallery starts as PENDING when an owner
// registers it and must be APPROVED by an administrator before any
// exhibition can be created under it.
const (
	GalleryPending  = "PENDING"
	GalleryApproved = "APPROVED"
	GalleryRejected = "REJECTED"
)

// Gallery represents an art gallery owned by a user.  A gallery can host
// multiple exhibition events.  Each gallery belongs to one owner.  This
// struct corresponds to a row in the `galleries` table.
//
// Fields:
//  ID           – primary key identifier.
//  OwnerID      – user ID of the gallery owner.
//  Name         – gallery name, unique per owner.
//  Address      – physical address of the gallery.
//  ContactEmail – contact address shown to artists.
//  Status       – moderation state (PENDING, APPROVED, REJECTED).
//  CreatedAt    – timestamp when the gallery was registered.
//  UpdatedAt    – timestamp of last update.
type Gallery struct {
	ID           uint64    // galleries.id
	OwnerID      uint64    // galleries.owner_id
	Name         string    // galleries.name
	Address      string    // galleries.address
	ContactEmail string    // galleries.contact_email
	Status       string    // galleries.status
	CreatedAt    time.Time // galleries.created_at
	UpdatedAt    time.Time // galleries.updated_at
}
