// Package repository contains data access logic for bookings. BookingRepo is
// the storage half of the reservation core: it implements the
// booking.StandStore and booking.BookingStore contracts over MySQL. Every
// mutating method is atomic with respect to concurrent callers through a
// combination of a transaction, a row lock on the stand and the unique index
// over active bookings (bookings.active_stand_id). The index is the backstop:
// even if the locked re-check were removed, two active bookings for one stand
// cannot be committed.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artishok/stand-booking/internal/booking"
	"github.com/artishok/stand-booking/internal/model"
)

// BookingRepo provides persistence for bookings and the atomic
// booking/stand transitions.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = "id, stand_id, artist_id, status, reason, created_at, updated_at"

func scanBooking(row interface{ Scan(...interface{}) error }, b *model.Booking) error {
	var reason sql.NullString
	if err := row.Scan(&b.ID, &b.StandID, &b.ArtistID, &b.Status, &reason, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if reason.Valid {
		rs := reason.String
		b.Reason = &rs
	}
	return nil
}

func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// StandEventInfo resolves a stand together with the window and
// container facts of its owning event. Satisfies booking.StandStore.
func (r *BookingRepo) StandEventInfo(ctx context.Context, standID uint64) (*booking.StandEvent, error) {
	const q = `SELECT s.id, s.hall_map_id, s.stand_number, s.position_x, s.position_y,
	                  s.width, s.height, s.stand_type, s.status, s.created_at, s.updated_at,
	                  e.id, e.gallery_id, e.status, e.starts_at, e.ends_at
	           FROM stands s
	           JOIN hall_maps hm ON hm.id = s.hall_map_id
	           JOIN exhibition_events e ON e.id = hm.event_id
	           WHERE s.id = ?`
	var se booking.StandEvent
	err := r.db.QueryRowContext(ctx, q, standID).Scan(
		&se.Stand.ID, &se.Stand.HallMapID, &se.Stand.StandNumber, &se.Stand.PositionX, &se.Stand.PositionY,
		&se.Stand.Width, &se.Stand.Height, &se.Stand.StandType, &se.Stand.Status, &se.Stand.CreatedAt, &se.Stand.UpdatedAt,
		&se.EventID, &se.GalleryID, &se.EventStatus, &se.StartsAt, &se.EndsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stand %d: %w", standID, booking.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &se, nil
}

// EventByID resolves an exhibition event for the booking core.
func (r *BookingRepo) EventByID(ctx context.Context, eventID uint64) (*model.ExhibitionEvent, error) {
	const q = `SELECT id, gallery_id, title, description, starts_at, ends_at, status, created_at, updated_at
	           FROM exhibition_events WHERE id = ?`
	var e model.ExhibitionEvent
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&e.ID, &e.GalleryID, &e.Title, &desc, &e.StartsAt, &e.EndsAt, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", eventID, booking.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		e.Description = &d
	}
	return &e, nil
}

// AvailableByEvent returns stands under the event with status AVAILABLE
// and no active booking, in ascending stand id order. The snapshot is a
// single consistent read; callers re-query to observe later changes.
func (r *BookingRepo) AvailableByEvent(ctx context.Context, eventID uint64) ([]model.Stand, error) {
	const q = `SELECT s.id, s.hall_map_id, s.stand_number, s.position_x, s.position_y,
	                  s.width, s.height, s.stand_type, s.status, s.created_at, s.updated_at
	           FROM stands s
	           JOIN hall_maps hm ON hm.id = s.hall_map_id
	           WHERE hm.event_id = ?
	             AND s.status = ?
	             AND NOT EXISTS (
	                 SELECT 1 FROM bookings b
	                 WHERE b.stand_id = s.id AND b.status IN (?, ?))
	           ORDER BY s.id`
	rows, err := r.db.QueryContext(ctx, q, eventID, model.StandAvailable, model.BookingPending, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Stand
	for rows.Next() {
		var s model.Stand
		if err := rows.Scan(&s.ID, &s.HallMapID, &s.StandNumber, &s.PositionX, &s.PositionY,
			&s.Width, &s.Height, &s.StandType, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePending inserts a PENDING booking if and only if no active
// booking exists for the stand. The stand row is locked for the span of
// the check-then-insert, so concurrent requests for the same stand
// serialize; the losing transaction sees the winner's row and gets
// booking.ErrConflict. A duplicate-key error from the active-booking
// unique index maps to the same sentinel.
func (r *BookingRepo) CreatePending(ctx context.Context, standID, artistID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var lockedID uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM stands WHERE id = ? FOR UPDATE", standID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stand %d: %w", standID, booking.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var active int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE stand_id = ? AND status IN (?, ?)",
		standID, model.BookingPending, model.BookingConfirmed).Scan(&active)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, fmt.Errorf("stand %d already has an active booking: %w", standID, booking.ErrConflict)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (stand_id, artist_id, status) VALUES (?, ?, ?)",
		standID, artistID, model.BookingPending)
	if isDuplicate(err) {
		return nil, fmt.Errorf("stand %d already has an active booking: %w", standID, booking.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var b model.Booking
	if err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id), &b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &b, nil
}

// Info loads a booking together with its container ids and event
// window. Satisfies booking.BookingStore.
func (r *BookingRepo) Info(ctx context.Context, bookingID uint64) (*booking.BookingInfo, error) {
	const q = `SELECT b.id, b.stand_id, b.artist_id, b.status, b.reason, b.created_at, b.updated_at,
	                  e.id, e.gallery_id, e.status, e.starts_at, e.ends_at
	           FROM bookings b
	           JOIN stands s ON s.id = b.stand_id
	           JOIN hall_maps hm ON hm.id = s.hall_map_id
	           JOIN exhibition_events e ON e.id = hm.event_id
	           WHERE b.id = ?`
	var info booking.BookingInfo
	var reason sql.NullString
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
		&info.Booking.ID, &info.Booking.StandID, &info.Booking.ArtistID, &info.Booking.Status,
		&reason, &info.Booking.CreatedAt, &info.Booking.UpdatedAt,
		&info.EventID, &info.GalleryID, &info.EventStatus, &info.StartsAt, &info.EndsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", bookingID, booking.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		rs := reason.String
		info.Booking.Reason = &rs
	}
	return &info, nil
}

// Confirm moves the booking PENDING→CONFIRMED and the stand
// AVAILABLE→BOOKED inside one transaction. Each UPDATE carries its
// expected current status in the WHERE clause, so a transition raced by
// another caller affects zero rows and aborts the whole step. Partial
// application is unreachable: either both rows move or neither does.
func (r *BookingRepo) Confirm(ctx context.Context, bookingID, standID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ? AND status = ?",
		model.BookingConfirmed, bookingID, model.BookingPending)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, r.explainBookingMiss(ctx, bookingID)
	}

	res, err = tx.ExecContext(ctx,
		"UPDATE stands SET status = ? WHERE id = ? AND status = ?",
		model.StandBooked, standID, model.StandAvailable)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("stand %d is not available: %w", standID, booking.ErrConflict)
	}

	var b model.Booking
	if err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", bookingID), &b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &b, nil
}

// Reject moves the booking PENDING→CANCELLED and records the reason.
// The stand row is untouched: a PENDING booking never set it to BOOKED.
func (r *BookingRepo) Reject(ctx context.Context, bookingID uint64, reason string) (*model.Booking, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, reason = ? WHERE id = ? AND status = ?",
		model.BookingCancelled, reason, bookingID, model.BookingPending)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, r.explainBookingMiss(ctx, bookingID)
	}
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", bookingID), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Cancel moves an active booking to CANCELLED. When the booking had
// been CONFIRMED the stand reverts to AVAILABLE in the same
// transaction, so a stand is never left BOOKED by a dead booking.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, standID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id = ? FOR UPDATE", bookingID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", bookingID, booking.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if status != model.BookingPending && status != model.BookingConfirmed {
		return nil, fmt.Errorf("booking %d is already %s: %w", bookingID, status, booking.ErrInvalidState)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ?",
		model.BookingCancelled, bookingID); err != nil {
		return nil, err
	}
	if status == model.BookingConfirmed {
		if _, err := tx.ExecContext(ctx,
			"UPDATE stands SET status = ? WHERE id = ? AND status = ?",
			model.StandAvailable, standID, model.StandBooked); err != nil {
			return nil, err
		}
	}

	var b model.Booking
	if err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", bookingID), &b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &b, nil
}

// explainBookingMiss turns a zero-row CAS update into the precise
// sentinel: the booking is missing, or it is no longer PENDING.
func (r *BookingRepo) explainBookingMiss(ctx context.Context, bookingID uint64) error {
	var status string
	err := r.db.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id = ?", bookingID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("booking %d: %w", bookingID, booking.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("booking %d is %s, not PENDING: %w", bookingID, status, booking.ErrInvalidState)
}

// BookingDetail is a booking row joined with the stand, hall map and
// event it targets, shaped for the artist's "my bookings" listing.
type BookingDetail struct {
	ID          uint64  `json:"id"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason,omitempty"`
	StandID     uint64  `json:"stand_id"`
	StandNumber string  `json:"stand_number"`
	HallMapName string  `json:"hall_map_name"`
	EventID     uint64  `json:"event_id"`
	EventTitle  string  `json:"event_title"`
	GalleryName string  `json:"gallery_name"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	CreatedAt   string  `json:"created_at"`
}

// OwnerBookingDetail extends BookingDetail with the requesting artist,
// for gallery owner inbox views.
type OwnerBookingDetail struct {
	BookingDetail
	ArtistID    uint64 `json:"artist_id"`
	ArtistName  string `json:"artist_name"`
	ArtistEmail string `json:"artist_email"`
}

const bookingDetailJoin = `
	FROM bookings b
	JOIN stands s ON s.id = b.stand_id
	JOIN hall_maps hm ON hm.id = s.hall_map_id
	JOIN exhibition_events e ON e.id = hm.event_id
	JOIN galleries g ON g.id = e.gallery_id`

func scanBookingDetail(rows *sql.Rows, d *BookingDetail, extra ...interface{}) error {
	var reason sql.NullString
	var startsAt, endsAt, createdAt sql.NullTime
	dest := []interface{}{&d.ID, &d.Status, &reason, &d.StandID, &d.StandNumber, &d.HallMapName,
		&d.EventID, &d.EventTitle, &d.GalleryName, &startsAt, &endsAt, &createdAt}
	dest = append(dest, extra...)
	if err := rows.Scan(dest...); err != nil {
		return err
	}
	if reason.Valid {
		rs := reason.String
		d.Reason = &rs
	}
	if startsAt.Valid {
		d.StartsAt = startsAt.Time.UTC().Format(time.RFC3339)
	}
	if endsAt.Valid {
		d.EndsAt = endsAt.Time.UTC().Format(time.RFC3339)
	}
	if createdAt.Valid {
		d.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
	}
	return nil
}

// ListByArtist returns all bookings created by the artist, newest
// first, joined with stand and event context for display. Pass
// status="" for all statuses.
func (r *BookingRepo) ListByArtist(ctx context.Context, artistID uint64, status string) ([]BookingDetail, error) {
	q := `SELECT b.id, b.status, b.reason, s.id, s.stand_number, hm.name,
	             e.id, e.title, g.name, e.starts_at, e.ends_at, b.created_at` +
		bookingDetailJoin + `
	    WHERE b.artist_id = ?`
	args := []interface{}{artistID}
	if status != "" {
		q += " AND b.status = ?"
		args = append(args, status)
	}
	q += " ORDER BY b.created_at DESC, b.id DESC"
	return r.listDetails(ctx, q, args...)
}

// ListActiveByArtist returns the artist's CONFIRMED bookings on events
// that are ACTIVE and have not yet ended: the stands they can currently
// count on.
func (r *BookingRepo) ListActiveByArtist(ctx context.Context, artistID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.status, b.reason, s.id, s.stand_number, hm.name,
	                  e.id, e.title, g.name, e.starts_at, e.ends_at, b.created_at` +
		bookingDetailJoin + `
	    WHERE b.artist_id = ? AND b.status = ? AND e.status = ? AND e.ends_at > NOW()
	    ORDER BY e.starts_at, b.id`
	return r.listDetails(ctx, q, artistID, model.BookingConfirmed, model.EventActive)
}

func (r *BookingRepo) listDetails(ctx context.Context, q string, args ...interface{}) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BookingDetail{}
	for rows.Next() {
		var d BookingDetail
		if err := scanBookingDetail(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEventForOwner returns all bookings under a given event when
// accessed by its gallery owner. It verifies ownership before returning
// the list; otherwise ErrForbidden is returned, or ErrEventNotFound
// when the event does not exist. Pass status="" for all statuses.
func (r *BookingRepo) ListByEventForOwner(ctx context.Context, eventID, ownerID uint64, status string) ([]OwnerBookingDetail, error) {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT g.owner_id FROM exhibition_events e JOIN galleries g ON g.id = e.gallery_id WHERE e.id = ?`,
		eventID).Scan(&actualOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}

	q := `SELECT b.id, b.status, b.reason, s.id, s.stand_number, hm.name,
	             e.id, e.title, g.name, e.starts_at, e.ends_at, b.created_at,
	             u.id, u.full_name, u.email` +
		bookingDetailJoin + `
	    JOIN users u ON u.id = b.artist_id
	    WHERE e.id = ?`
	args := []interface{}{eventID}
	if status != "" {
		q += " AND b.status = ?"
		args = append(args, status)
	}
	q += " ORDER BY b.created_at DESC, b.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OwnerBookingDetail{}
	for rows.Next() {
		var d OwnerBookingDetail
		if err := scanBookingDetail(rows, &d.BookingDetail, &d.ArtistID, &d.ArtistName, &d.ArtistEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPendingForOwner returns the owner's decision inbox: every PENDING
// booking across all galleries they own, oldest first so long-waiting
// requests surface at the top.
func (r *BookingRepo) ListPendingForOwner(ctx context.Context, ownerID uint64) ([]OwnerBookingDetail, error) {
	const q = `SELECT b.id, b.status, b.reason, s.id, s.stand_number, hm.name,
	                  e.id, e.title, g.name, e.starts_at, e.ends_at, b.created_at,
	                  u.id, u.full_name, u.email` +
		bookingDetailJoin + `
	    JOIN users u ON u.id = b.artist_id
	    WHERE g.owner_id = ? AND b.status = ?
	    ORDER BY b.created_at, b.id`
	rows, err := r.db.QueryContext(ctx, q, ownerID, model.BookingPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OwnerBookingDetail{}
	for rows.Next() {
		var d OwnerBookingDetail
		if err := scanBookingDetail(rows, &d.BookingDetail, &d.ArtistID, &d.ArtistName, &d.ArtistEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
