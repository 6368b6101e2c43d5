package access

import "context"

// Policy answers "does this identity have authority over that gallery".
// The booking core consults it before confirming or rejecting a booking.
// The production implementation is repository-backed (owner_id lookup);
// tests supply a fixed map.
type Policy interface {
	// HasAuthorityOver reports whether id may manage bookings for the
	// gallery.  Administrators always have authority.
	HasAuthorityOver(ctx context.Context, id Identity, galleryID uint64) (bool, error)
}

// OwnerLookup resolves a gallery to its owning user.  The repository
// layer implements it.
type OwnerLookup interface {
	GalleryOwnerID(ctx context.Context, galleryID uint64) (uint64, error)
}

// OwnerPolicy is the standard Policy: a gallery owner has authority over
// their own galleries, an administrator over all of them.
type OwnerPolicy struct {
	Galleries OwnerLookup
}

// NewOwnerPolicy builds an OwnerPolicy over the given lookup.
func NewOwnerPolicy(g OwnerLookup) *OwnerPolicy {
	return &OwnerPolicy{Galleries: g}
}

// HasAuthorityOver implements Policy.
func (p *OwnerPolicy) HasAuthorityOver(ctx context.Context, id Identity, galleryID uint64) (bool, error) {
	if id.Role == RoleAdmin {
		return true, nil
	}
	if id.Role != RoleOwner {
		return false, nil
	}
	ownerID, err := p.Galleries.GalleryOwnerID(ctx, galleryID)
	if err != nil {
		return false, err
	}
	return ownerID == id.UserID, nil
}
