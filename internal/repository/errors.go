// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// cannot proceed due to conflicting records (e.g. registering a
// duplicate stand number within a hall map).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned when a lifecycle transition is not
// legal from the row's current status, e.g. submitting an event
// that is not DRAFT. Handlers translate this into HTTP 422.
var ErrInvalidState = errors.New("invalid state")

// Not-found sentinels, one per aggregate. Repositories return their
// own sentinel instead of leaking sql.ErrNoRows to handlers.
var (
	ErrGalleryNotFound = errors.New("gallery not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrHallMapNotFound = errors.New("hall map not found")
	ErrStandNotFound   = errors.New("stand not found")
	ErrBookingNotFound = errors.New("booking not found")
)
