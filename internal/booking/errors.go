// Package booking implements the stand reservation core: the two-step
// request/approval workflow that guarantees at most one active booking
// per stand.  The package owns the error taxonomy for reservation
// operations and depends only on narrow store interfaces, so the same
// logic runs against MySQL in production and in-memory stores in tests.
package booking

import "errors"

// Sentinel errors returned by Service operations and by store
// implementations.  Handlers translate them to HTTP status codes;
// callers decide retry behaviour: ErrConflict is safe to retry, the
// rest are not.
var (
	// ErrNotFound indicates the referenced stand, booking or event does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller lacks authority for the
	// operation (wrong artist, or no authority over the gallery).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState indicates the operation is not legal in the
	// booking's current lifecycle state or the event window has closed.
	// Wrapped errors carry current-state context.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict indicates a concurrent transition raced for the same
	// stand and this caller lost.  The stand was just taken by someone
	// else; the caller may retry with a different stand.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates malformed input, e.g. an empty rejection
	// reason.
	ErrValidation = errors.New("validation")
)
