// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for galleries. A Gallery represents a
// venue owned by a GALLERY_OWNER user; it starts PENDING and must be APPROVED
// by an administrator before exhibitions can be created under it.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sentinel comparisons

	"github.com/artishok/stand-booking/internal/model"
)

// GalleryRepo encapsulates all database queries related to galleries.
type GalleryRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewGalleryRepo constructs a GalleryRepo with the provided DB handle.
func NewGalleryRepo(db *sql.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

// Create inserts a new gallery in PENDING status. On success the
// gallery's ID, Status and timestamp fields are populated from the
// freshly inserted row so that callers receive a complete record.
func (r *GalleryRepo) Create(ctx context.Context, g *model.Gallery) error {
	const qInsert = "INSERT INTO galleries (owner_id, name, address, contact_email) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, g.OwnerID, g.Name, g.Address, g.ContactEmail)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)

	const qSelect = "SELECT owner_id, name, address, contact_email, status, created_at, updated_at FROM galleries WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, g.ID).Scan(
		&g.OwnerID, &g.Name, &g.Address, &g.ContactEmail, &g.Status, &g.CreatedAt, &g.UpdatedAt)
}

// GetByID fetches a gallery by its ID regardless of owner. It returns
// ErrGalleryNotFound if no row is found.
func (r *GalleryRepo) GetByID(ctx context.Context, id uint64) (*model.Gallery, error) {
	const q = "SELECT id, owner_id, name, address, contact_email, status, created_at, updated_at FROM galleries WHERE id = ?"
	var g model.Gallery
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.Address, &g.ContactEmail, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByIDAndOwner fetches a gallery by id but only if it belongs to the
// specified owner. If the gallery doesn't exist or is owned by someone
// else, ErrGalleryNotFound is returned.
func (r *GalleryRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Gallery, error) {
	const q = "SELECT id, owner_id, name, address, contact_email, status, created_at, updated_at FROM galleries WHERE id = ? AND owner_id = ?"
	var g model.Gallery
	if err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.Address, &g.ContactEmail, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &g, nil
}

// ListByOwner returns all galleries for a specific owner ordered by id.
func (r *GalleryRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Gallery, error) {
	const q = `SELECT id, owner_id, name, address, contact_email, status, created_at, updated_at
	           FROM galleries WHERE owner_id = ? ORDER BY id`
	return r.list(ctx, q, ownerID)
}

// ListByStatus returns galleries in the given moderation status ordered
// by id. Administrators use it to review the PENDING queue; the public
// browse endpoints use it with APPROVED.
func (r *GalleryRepo) ListByStatus(ctx context.Context, status string) ([]*model.Gallery, error) {
	const q = `SELECT id, owner_id, name, address, contact_email, status, created_at, updated_at
	           FROM galleries WHERE status = ? ORDER BY id`
	return r.list(ctx, q, status)
}

func (r *GalleryRepo) list(ctx context.Context, q string, arg interface{}) ([]*model.Gallery, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Gallery
	for rows.Next() {
		g := new(model.Gallery)
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Address, &g.ContactEmail, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Moderate moves a PENDING gallery to APPROVED or REJECTED. The status
// guard in the WHERE clause makes the transition idempotent-safe: a
// second moderation attempt affects zero rows and yields
// ErrInvalidState, while an unknown id yields ErrGalleryNotFound.
func (r *GalleryRepo) Moderate(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE galleries SET status=? WHERE id=? AND status=?",
		status, id, model.GalleryPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidState
	}
	return nil
}

// GalleryOwnerID resolves the owner of a gallery. It satisfies the
// access.OwnerLookup interface used by the booking authority policy.
func (r *GalleryRepo) GalleryOwnerID(ctx context.Context, galleryID uint64) (uint64, error) {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM galleries WHERE id = ?", galleryID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrGalleryNotFound
	}
	return ownerID, err
}
