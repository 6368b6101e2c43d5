// Package repository contains data access logic for exhibition events. An
// ExhibitionEvent is a time-bounded exhibition hosted by an approved gallery.
// Events are created as DRAFT and only accept stand bookings once the owner
// submits them to ACTIVE.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artishok/stand-booking/internal/model"
)

// EventRepo manages persistence for exhibition events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = "id, gallery_id, title, description, starts_at, ends_at, status, created_at, updated_at"

func scanEvent(row interface{ Scan(...interface{}) error }) (*model.ExhibitionEvent, error) {
	var e model.ExhibitionEvent
	var desc sql.NullString
	if err := row.Scan(&e.ID, &e.GalleryID, &e.Title, &desc, &e.StartsAt, &e.EndsAt, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		e.Description = &d
	}
	return &e, nil
}

// Create inserts a new event into the database and assigns the
// generated ID back to the struct. The caller must provide gallery_id,
// title, starts_at and ends_at; window validation happens before the
// repository. Status is implicitly DRAFT by the DB.
func (r *EventRepo) Create(ctx context.Context, e *model.ExhibitionEvent) error {
	const q = `INSERT INTO exhibition_events (gallery_id, title, description, starts_at, ends_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.GalleryID, e.Title, e.Description, e.StartsAt, e.EndsAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	// Query the inserted row to obtain default fields such as status and timestamps.
	got, err := scanEvent(r.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM exhibition_events WHERE id = ?", e.ID))
	if err != nil {
		return err
	}
	*e = *got
	return nil
}

// GetByID retrieves an event by its ID. It returns ErrEventNotFound if
// there is no matching row.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.ExhibitionEvent, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM exhibition_events WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ListActive returns all ACTIVE events ordered by start time. This is
// the public browse listing used by artists looking for a stand.
func (r *EventRepo) ListActive(ctx context.Context) ([]*model.ExhibitionEvent, error) {
	const q = "SELECT " + eventColumns + " FROM exhibition_events WHERE status = ? ORDER BY starts_at, id"
	return r.list(ctx, q, model.EventActive)
}

// ListByGallery returns all events hosted by a gallery ordered by id.
func (r *EventRepo) ListByGallery(ctx context.Context, galleryID uint64) ([]*model.ExhibitionEvent, error) {
	const q = "SELECT " + eventColumns + " FROM exhibition_events WHERE gallery_id = ? ORDER BY id"
	return r.list(ctx, q, galleryID)
}

func (r *EventRepo) list(ctx context.Context, q string, arg interface{}) ([]*model.ExhibitionEvent, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ExhibitionEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Submit moves a DRAFT event to ACTIVE on behalf of its gallery owner.
// Ownership is enforced through the join to galleries; the status guard
// rejects repeat submissions. Returns ErrEventNotFound for an unknown
// id, ErrForbidden when the caller does not own the gallery and
// ErrInvalidState when the event is not DRAFT.
func (r *EventRepo) Submit(ctx context.Context, eventID, ownerID uint64) error {
	const q = `UPDATE exhibition_events e
	           JOIN galleries g ON g.id = e.gallery_id
	           SET e.status = ?
	           WHERE e.id = ? AND g.owner_id = ? AND e.status = ?`
	res, err := r.db.ExecContext(ctx, q, model.EventActive, eventID, ownerID, model.EventDraft)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// Zero rows affected: distinguish missing, foreign and non-DRAFT.
	e, err := r.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	var galleryOwner uint64
	if err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM galleries WHERE id = ?", e.GalleryID).Scan(&galleryOwner); err != nil {
		return err
	}
	if galleryOwner != ownerID {
		return ErrForbidden
	}
	return ErrInvalidState
}
