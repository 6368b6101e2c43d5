// Package repository contains data access logic for stands. A Stand is a
// rentable rectangle positioned on a hall map. Stand numbers are unique per
// hall map; availability is owned by the booking core and only read here.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/artishok/stand-booking/internal/model"
)

// StandRepo encapsulates database operations for stands.
type StandRepo struct {
	db *sql.DB
}

// NewStandRepo constructs a StandRepo given a DB handle.
func NewStandRepo(db *sql.DB) *StandRepo {
	return &StandRepo{db: db}
}

const standColumns = "id, hall_map_id, stand_number, position_x, position_y, width, height, stand_type, status, created_at, updated_at"

func scanStand(row interface{ Scan(...interface{}) error }, s *model.Stand) error {
	return row.Scan(&s.ID, &s.HallMapID, &s.StandNumber, &s.PositionX, &s.PositionY,
		&s.Width, &s.Height, &s.StandType, &s.Status, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a single stand. A duplicate stand number within the
// hall map yields ErrConflict. On success the generated ID, the
// AVAILABLE default status and timestamps are populated on the struct.
func (r *StandRepo) Create(ctx context.Context, s *model.Stand) error {
	const q = `INSERT INTO stands (hall_map_id, stand_number, position_x, position_y, width, height, stand_type)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.HallMapID, s.StandNumber, s.PositionX, s.PositionY, s.Width, s.Height, s.StandType)
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
	s.ID = uint64(id)
	return scanStand(r.db.QueryRowContext(ctx,
		"SELECT "+standColumns+" FROM stands WHERE id = ?", s.ID), s)
}

// CreateBulk inserts multiple stands in one statement, used when an
// owner lays out a whole grid at once. Only placement fields are
// inserted; status and timestamps default in the DB. The ID fields of
// the passed structures are not populated. Passing an empty slice has
// no effect and returns nil.
func (r *StandRepo) CreateBulk(ctx context.Context, stands []model.Stand) error {
	if len(stands) == 0 {
		return nil
	}
	query := `INSERT INTO stands (hall_map_id, stand_number, position_x, position_y, width, height, stand_type) VALUES `
	args := make([]interface{}, 0, len(stands)*7)
	for i, s := range stands {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args, s.HallMapID, s.StandNumber, s.PositionX, s.PositionY, s.Width, s.Height, s.StandType)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// GetByID fetches a stand by id. Returns ErrStandNotFound when no row
// matches.
func (r *StandRepo) GetByID(ctx context.Context, id uint64) (*model.Stand, error) {
	var s model.Stand
	if err := scanStand(r.db.QueryRowContext(ctx,
		"SELECT "+standColumns+" FROM stands WHERE id = ?", id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByHallMap returns all stands on a hall map ordered by stand
// number, the order they are drawn on the floor plan.
func (r *StandRepo) ListByHallMap(ctx context.Context, hallMapID uint64) ([]model.Stand, error) {
	const q = "SELECT " + standColumns + " FROM stands WHERE hall_map_id = ? ORDER BY stand_number"
	return r.list(ctx, q, hallMapID)
}

// ListByEvent returns every stand under an event across all of its hall
// maps, ordered by stand id. The status column reflects confirmed
// bookings only; PENDING requests do not change it.
func (r *StandRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Stand, error) {
	const q = `SELECT s.id, s.hall_map_id, s.stand_number, s.position_x, s.position_y,
	                  s.width, s.height, s.stand_type, s.status, s.created_at, s.updated_at
	           FROM stands s
	           JOIN hall_maps hm ON hm.id = s.hall_map_id
	           WHERE hm.event_id = ?
	           ORDER BY s.id`
	return r.list(ctx, q, eventID)
}

func (r *StandRepo) list(ctx context.Context, q string, arg interface{}) ([]model.Stand, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Stand
	for rows.Next() {
		var s model.Stand
		if err := scanStand(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
