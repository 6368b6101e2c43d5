package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"ARTIST", RoleArtist},
		{"GALLERY_OWNER", RoleOwner},
		{"ADMIN", RoleAdmin},
		{"artist", RoleArtist},
		{"  Gallery_Owner ", RoleOwner},
		{"", RoleUnknown},
		{"OWNER", RoleUnknown},
		{"CUSTOMER", RoleUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseRole(c.in), "input %q", c.in)
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "ARTIST", RoleArtist.String())
	assert.Equal(t, "GALLERY_OWNER", RoleOwner.String())
	assert.Equal(t, "ADMIN", RoleAdmin.String())
	assert.Equal(t, "UNKNOWN", RoleUnknown.String())
}

// fixedLookup resolves gallery owners from a map.
type fixedLookup struct {
	owners map[uint64]uint64
	err    error
}

func (l fixedLookup) GalleryOwnerID(_ context.Context, galleryID uint64) (uint64, error) {
	if l.err != nil {
		return 0, l.err
	}
	return l.owners[galleryID], nil
}

func TestOwnerPolicyOwnGallery(t *testing.T) {
	p := NewOwnerPolicy(fixedLookup{owners: map[uint64]uint64{7: 42}})

	ok, err := p.HasAuthorityOver(context.Background(), Identity{UserID: 42, Role: RoleOwner}, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOwnerPolicyForeignGallery(t *testing.T) {
	p := NewOwnerPolicy(fixedLookup{owners: map[uint64]uint64{7: 42}})

	ok, err := p.HasAuthorityOver(context.Background(), Identity{UserID: 43, Role: RoleOwner}, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOwnerPolicyAdminBypassesLookup(t *testing.T) {
	p := NewOwnerPolicy(fixedLookup{err: errors.New("lookup must not be called")})

	ok, err := p.HasAuthorityOver(context.Background(), Identity{UserID: 1, Role: RoleAdmin}, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOwnerPolicyNonOwnerRoles(t *testing.T) {
	p := NewOwnerPolicy(fixedLookup{owners: map[uint64]uint64{7: 42}})

	for _, r := range []Role{RoleArtist, RoleUnknown} {
		ok, err := p.HasAuthorityOver(context.Background(), Identity{UserID: 42, Role: r}, 7)
		require.NoError(t, err)
		assert.False(t, ok, "role %s", r)
	}
}

func TestOwnerPolicyLookupError(t *testing.T) {
	boom := errors.New("db down")
	p := NewOwnerPolicy(fixedLookup{err: boom})

	_, err := p.HasAuthorityOver(context.Background(), Identity{UserID: 42, Role: RoleOwner}, 7)
	assert.ErrorIs(t, err, boom)
}
