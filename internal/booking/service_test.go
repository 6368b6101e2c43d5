package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/model"
)

// fixedClock returns the same instant on every call.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// memStore is an in-memory StandStore + BookingStore. A single mutex
// serializes every mutating call, which matches the atomicity contract
// the MySQL implementation provides with transactions and row locks.
type memStore struct {
	mu       sync.Mutex
	nextID   uint64
	stands   map[uint64]*model.Stand
	events   map[uint64]*model.ExhibitionEvent
	mapEvent map[uint64]uint64 // hall map id -> event id
	bookings map[uint64]*model.Booking
}

func newMemStore() *memStore {
	return &memStore{
		nextID:   1,
		stands:   map[uint64]*model.Stand{},
		events:   map[uint64]*model.ExhibitionEvent{},
		mapEvent: map[uint64]uint64{},
		bookings: map[uint64]*model.Booking{},
	}
}

func (m *memStore) id() uint64 { v := m.nextID; m.nextID++; return v }

func (m *memStore) addEvent(galleryID uint64, status string, startsAt, endsAt time.Time) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.events[id] = &model.ExhibitionEvent{ID: id, GalleryID: galleryID, Status: status, StartsAt: startsAt, EndsAt: endsAt}
	return id
}

func (m *memStore) addStand(eventID uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	hallMapID := m.id()
	m.mapEvent[hallMapID] = eventID
	id := m.id()
	m.stands[id] = &model.Stand{ID: id, HallMapID: hallMapID, StandNumber: fmt.Sprintf("A-%d", id), Status: model.StandAvailable}
	return id
}

func (m *memStore) StandEventInfo(_ context.Context, standID uint64) (*StandEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stands[standID]
	if !ok {
		return nil, fmt.Errorf("stand %d: %w", standID, ErrNotFound)
	}
	e := m.events[m.mapEvent[s.HallMapID]]
	return &StandEvent{
		Stand:       *s,
		EventID:     e.ID,
		GalleryID:   e.GalleryID,
		EventStatus: e.Status,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
	}, nil
}

func (m *memStore) EventByID(_ context.Context, eventID uint64) (*model.ExhibitionEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return nil, fmt.Errorf("event %d: %w", eventID, ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) AvailableByEvent(_ context.Context, eventID uint64) ([]model.Stand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Stand
	for id := uint64(0); id < m.nextID; id++ {
		s, ok := m.stands[id]
		if !ok || m.mapEvent[s.HallMapID] != eventID || s.Status != model.StandAvailable {
			continue
		}
		if m.activeBookingLocked(id) != nil {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *memStore) activeBookingLocked(standID uint64) *model.Booking {
	for _, b := range m.bookings {
		if b.StandID == standID && b.Active() {
			return b
		}
	}
	return nil
}

func (m *memStore) CreatePending(_ context.Context, standID, artistID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stands[standID]; !ok {
		return nil, fmt.Errorf("stand %d: %w", standID, ErrNotFound)
	}
	if m.activeBookingLocked(standID) != nil {
		return nil, fmt.Errorf("stand %d already requested: %w", standID, ErrConflict)
	}
	id := m.id()
	b := &model.Booking{ID: id, StandID: standID, ArtistID: artistID, Status: model.BookingPending}
	m.bookings[id] = b
	cp := *b
	return &cp, nil
}

func (m *memStore) Info(_ context.Context, bookingID uint64) (*BookingInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	s := m.stands[b.StandID]
	e := m.events[m.mapEvent[s.HallMapID]]
	return &BookingInfo{
		Booking:     *b,
		EventID:     e.ID,
		GalleryID:   e.GalleryID,
		EventStatus: e.Status,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
	}, nil
}

func (m *memStore) Confirm(_ context.Context, bookingID, standID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	if b.Status != model.BookingPending {
		return nil, fmt.Errorf("booking %d is %s: %w", bookingID, b.Status, ErrInvalidState)
	}
	s := m.stands[standID]
	if s.Status != model.StandAvailable {
		return nil, fmt.Errorf("stand %d is not available: %w", standID, ErrConflict)
	}
	b.Status = model.BookingConfirmed
	s.Status = model.StandBooked
	cp := *b
	return &cp, nil
}

func (m *memStore) Reject(_ context.Context, bookingID uint64, reason string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	if b.Status != model.BookingPending {
		return nil, fmt.Errorf("booking %d is %s: %w", bookingID, b.Status, ErrInvalidState)
	}
	b.Status = model.BookingCancelled
	b.Reason = &reason
	cp := *b
	return &cp, nil
}

func (m *memStore) Cancel(_ context.Context, bookingID, standID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	if !b.Active() {
		return nil, fmt.Errorf("booking %d is %s: %w", bookingID, b.Status, ErrInvalidState)
	}
	if b.Status == model.BookingConfirmed {
		m.stands[standID].Status = model.StandAvailable
	}
	b.Status = model.BookingCancelled
	cp := *b
	return &cp, nil
}

// mapPolicy grants authority from a fixed gallery->owner map.
type mapPolicy struct{ owners map[uint64]uint64 }

func (p mapPolicy) HasAuthorityOver(_ context.Context, id access.Identity, galleryID uint64) (bool, error) {
	if id.Role == access.RoleAdmin {
		return true, nil
	}
	if id.Role != access.RoleOwner {
		return false, nil
	}
	return p.owners[galleryID] == id.UserID, nil
}

const (
	ownerID   = 10
	artistID  = 20
	otherID   = 21
	galleryID = 5
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newFixture returns a service over an ACTIVE event with one stand.
func newFixture(t *testing.T) (*Service, *memStore, uint64) {
	t.Helper()
	store := newMemStore()
	eventID := store.addEvent(galleryID, model.EventActive, testNow.Add(24*time.Hour), testNow.Add(72*time.Hour))
	standID := store.addStand(eventID)
	policy := mapPolicy{owners: map[uint64]uint64{galleryID: ownerID}}
	svc := NewService(store, store, policy, fixedClock{t: testNow})
	return svc, store, standID
}

func ownerIdentity() access.Identity {
	return access.Identity{UserID: ownerID, Role: access.RoleOwner}
}

func TestRequestCreatesPendingBooking(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, standID, b.StandID)
	assert.Equal(t, uint64(artistID), b.ArtistID)
}

func TestRequestUnknownStand(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.Request(context.Background(), 9999, artistID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestDraftEvent(t *testing.T) {
	store := newMemStore()
	eventID := store.addEvent(galleryID, model.EventDraft, testNow.Add(24*time.Hour), testNow.Add(72*time.Hour))
	standID := store.addStand(eventID)
	svc := NewService(store, store, mapPolicy{}, fixedClock{t: testNow})

	_, err := svc.Request(context.Background(), standID, artistID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRequestEndedEvent(t *testing.T) {
	store := newMemStore()
	eventID := store.addEvent(galleryID, model.EventActive, testNow.Add(-72*time.Hour), testNow.Add(-time.Hour))
	standID := store.addStand(eventID)
	svc := NewService(store, store, mapPolicy{}, fixedClock{t: testNow})

	_, err := svc.Request(context.Background(), standID, artistID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRequestTakenStand(t *testing.T) {
	svc, _, standID := newFixture(t)

	_, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), standID, otherID)
	assert.ErrorIs(t, err, ErrConflict)
}

// Two hundred artists race for one stand; exactly one wins.
func TestRequestConcurrentSingleWinner(t *testing.T) {
	svc, _, standID := newFixture(t)

	const n = 200
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Request(context.Background(), standID, uint64(1000+i))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestConfirmMovesBookingAndStand(t *testing.T) {
	svc, store, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	got, err := svc.Confirm(context.Background(), b.ID, ownerIdentity())
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, got.Status)
	assert.Equal(t, model.StandBooked, store.stands[standID].Status)
}

func TestConfirmConcurrentSingleWinner(t *testing.T) {
	svc, store, standID := newFixture(t)

	// Seed two PENDING bookings on one stand directly, behind the
	// store's uniqueness gate. However such a state arises, at most
	// one of the two may ever reach CONFIRMED.
	store.mu.Lock()
	var ids []uint64
	for _, artist := range []uint64{artistID, otherID} {
		id := store.id()
		store.bookings[id] = &model.Booking{ID: id, StandID: standID, ArtistID: artist, Status: model.BookingPending}
		ids = append(ids, id)
	}
	store.mu.Unlock()

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uint64) {
			defer wg.Done()
			_, errs[i] = svc.Confirm(context.Background(), id, ownerIdentity())
		}(i, id)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, model.StandBooked, store.stands[standID].Status)

	var confirmed int
	for _, b := range store.bookings {
		if b.Status == model.BookingConfirmed {
			confirmed++
		}
	}
	assert.Equal(t, 1, confirmed)
}

func TestConfirmByAdmin(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	admin := access.Identity{UserID: 99, Role: access.RoleAdmin}
	_, err = svc.Confirm(context.Background(), b.ID, admin)
	assert.NoError(t, err)
}

func TestConfirmByForeignOwner(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	stranger := access.Identity{UserID: 777, Role: access.RoleOwner}
	_, err = svc.Confirm(context.Background(), b.ID, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmByArtistRole(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), b.ID, access.Identity{UserID: artistID, Role: access.RoleArtist})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmTwice(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), b.ID, ownerIdentity())
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), b.ID, ownerIdentity())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirmUnknownBooking(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.Confirm(context.Background(), 12345, ownerIdentity())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectRecordsReason(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	got, err := svc.Reject(context.Background(), b.ID, ownerIdentity(), "double booked on our side")
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, got.Status)
	require.NotNil(t, got.Reason)
	assert.Equal(t, "double booked on our side", *got.Reason)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), b.ID, ownerIdentity(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRejectFreesStandForOthers(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), b.ID, ownerIdentity(), "no")
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), standID, otherID)
	assert.NoError(t, err)
}

func TestRejectConfirmedBooking(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), b.ID, ownerIdentity())
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), b.ID, ownerIdentity(), "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelPendingBooking(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	got, err := svc.Cancel(context.Background(), b.ID, artistID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, got.Status)
}

func TestCancelConfirmedReleasesStand(t *testing.T) {
	svc, store, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), b.ID, ownerIdentity())
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), b.ID, artistID)
	require.NoError(t, err)
	assert.Equal(t, model.StandAvailable, store.stands[standID].Status)

	_, err = svc.Request(context.Background(), standID, otherID)
	assert.NoError(t, err)
}

func TestCancelByAnotherArtist(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), b.ID, otherID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelAfterEventStarted(t *testing.T) {
	store := newMemStore()
	eventID := store.addEvent(galleryID, model.EventActive, testNow.Add(-time.Hour), testNow.Add(72*time.Hour))
	standID := store.addStand(eventID)
	svc := NewService(store, store, mapPolicy{owners: map[uint64]uint64{galleryID: ownerID}}, fixedClock{t: testNow})

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), b.ID, artistID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelTwice(t *testing.T) {
	svc, _, standID := newFixture(t)

	b, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), b.ID, artistID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), b.ID, artistID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAvailableStandsExcludesActive(t *testing.T) {
	svc, store, standID := newFixture(t)
	eventID := store.mapEvent[store.stands[standID].HallMapID]
	free := store.addStand(eventID)

	_, err := svc.Request(context.Background(), standID, artistID)
	require.NoError(t, err)

	stands, err := svc.AvailableStands(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, stands, 1)
	assert.Equal(t, free, stands[0].ID)
}

func TestAvailableStandsUnknownEvent(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.AvailableStands(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}
