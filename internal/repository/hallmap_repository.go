// Package repository contains data access logic for hall maps. A HallMap is
// the floor plan of one hall inside an exhibition event; stands are
// positioned on it.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/artishok/stand-booking/internal/model"
)

// HallMapRepo manages persistence for hall maps.
type HallMapRepo struct {
	db *sql.DB
}

// NewHallMapRepo constructs a HallMapRepo with the given DB handle.
func NewHallMapRepo(db *sql.DB) *HallMapRepo {
	return &HallMapRepo{db: db}
}

// Create inserts a new hall map under an event. Names are unique per
// event; a duplicate yields ErrConflict. On success the generated ID
// and timestamps are populated on the given struct.
func (r *HallMapRepo) Create(ctx context.Context, m *model.HallMap) error {
	const q = "INSERT INTO hall_maps (event_id, name) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, q, m.EventID, m.Name)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = "SELECT event_id, name, created_at, updated_at FROM hall_maps WHERE id = ?"
	return r.db.QueryRowContext(ctx, sel, m.ID).Scan(&m.EventID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID fetches a hall map by id. Returns ErrHallMapNotFound when no
// row matches.
func (r *HallMapRepo) GetByID(ctx context.Context, id uint64) (*model.HallMap, error) {
	const q = "SELECT id, event_id, name, created_at, updated_at FROM hall_maps WHERE id = ?"
	var m model.HallMap
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.EventID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallMapNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByEvent returns all hall maps of an event ordered by id.
func (r *HallMapRepo) ListByEvent(ctx context.Context, eventID uint64) ([]*model.HallMap, error) {
	const q = "SELECT id, event_id, name, created_at, updated_at FROM hall_maps WHERE event_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.HallMap
	for rows.Next() {
		m := new(model.HallMap)
		if err := rows.Scan(&m.ID, &m.EventID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EventIDForOwner resolves the event a hall map belongs to, enforcing
// that the calling owner controls the gallery hosting it. Returns
// ErrHallMapNotFound for unknown ids and ErrForbidden for maps under
// someone else's gallery.
func (r *HallMapRepo) EventIDForOwner(ctx context.Context, hallMapID, ownerID uint64) (uint64, error) {
	const q = `SELECT hm.event_id, g.owner_id
	           FROM hall_maps hm
	           JOIN exhibition_events e ON e.id = hm.event_id
	           JOIN galleries g ON g.id = e.gallery_id
	           WHERE hm.id = ?`
	var eventID, actualOwner uint64
	if err := r.db.QueryRowContext(ctx, q, hallMapID).Scan(&eventID, &actualOwner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrHallMapNotFound
		}
		return 0, err
	}
	if actualOwner != ownerID {
		return 0, ErrForbidden
	}
	return eventID, nil
}
