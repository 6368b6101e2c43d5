package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/booking"
	"github.com/artishok/stand-booking/internal/model"
)

// fakeStore is a scripted StandStore + BookingStore for handler tests.
// Each field holds the canned result of the matching method.
type fakeStore struct {
	standEvent *booking.StandEvent
	standErr   error

	created   *model.Booking
	createErr error

	info    *booking.BookingInfo
	infoErr error

	cancelled *model.Booking
	cancelErr error
}

func (f *fakeStore) StandEventInfo(context.Context, uint64) (*booking.StandEvent, error) {
	return f.standEvent, f.standErr
}

func (f *fakeStore) EventByID(context.Context, uint64) (*model.ExhibitionEvent, error) {
	return nil, fmt.Errorf("event: %w", booking.ErrNotFound)
}

func (f *fakeStore) AvailableByEvent(context.Context, uint64) ([]model.Stand, error) {
	return nil, nil
}

func (f *fakeStore) CreatePending(context.Context, uint64, uint64) (*model.Booking, error) {
	return f.created, f.createErr
}

func (f *fakeStore) Info(context.Context, uint64) (*booking.BookingInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeStore) Confirm(context.Context, uint64, uint64) (*model.Booking, error) {
	return nil, fmt.Errorf("not scripted: %w", booking.ErrInvalidState)
}

func (f *fakeStore) Reject(context.Context, uint64, string) (*model.Booking, error) {
	return nil, fmt.Errorf("not scripted: %w", booking.ErrInvalidState)
}

func (f *fakeStore) Cancel(context.Context, uint64, uint64) (*model.Booking, error) {
	return f.cancelled, f.cancelErr
}

// allowAll grants every identity authority over every gallery.
type allowAll struct{}

func (allowAll) HasAuthorityOver(context.Context, access.Identity, uint64) (bool, error) {
	return true, nil
}

type testClock struct{ t time.Time }

func (c testClock) Now() time.Time { return c.t }

var handlerNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newHandlerFixture(store *fakeStore) *ArtistBookingHandler {
	svc := booking.NewService(store, store, allowAll{}, testClock{t: handlerNow})
	return &ArtistBookingHandler{Service: svc}
}

func postJSON(t *testing.T, h echo.HandlerFunc, body string, userID uint64, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(userID))
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

func activeStandEvent() *booking.StandEvent {
	return &booking.StandEvent{
		Stand:       model.Stand{ID: 3, Status: model.StandAvailable},
		EventID:     2,
		GalleryID:   1,
		EventStatus: model.EventActive,
		StartsAt:    handlerNow.Add(24 * time.Hour),
		EndsAt:      handlerNow.Add(72 * time.Hour),
	}
}

func TestRequestBookingCreated(t *testing.T) {
	store := &fakeStore{
		standEvent: activeStandEvent(),
		created:    &model.Booking{ID: 9, StandID: 3, ArtistID: 20, Status: model.BookingPending},
	}
	h := newHandlerFixture(store)

	rec := postJSON(t, h.RequestBooking, `{"stand_id":3}`, 20, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(9), resp.ID)
	assert.Equal(t, model.BookingPending, resp.Status)
}

func TestRequestBookingMissingStandID(t *testing.T) {
	h := newHandlerFixture(&fakeStore{})

	rec := postJSON(t, h.RequestBooking, `{}`, 20, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestBookingUnknownStand(t *testing.T) {
	store := &fakeStore{standErr: fmt.Errorf("stand 3: %w", booking.ErrNotFound)}
	h := newHandlerFixture(store)

	rec := postJSON(t, h.RequestBooking, `{"stand_id":3}`, 20, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestBookingConflict(t *testing.T) {
	store := &fakeStore{
		standEvent: activeStandEvent(),
		createErr:  fmt.Errorf("stand 3 already requested: %w", booking.ErrConflict),
	}
	h := newHandlerFixture(store)

	rec := postJSON(t, h.RequestBooking, `{"stand_id":3}`, 20, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRequestBookingInactiveEvent(t *testing.T) {
	ev := activeStandEvent()
	ev.EventStatus = model.EventDraft
	h := newHandlerFixture(&fakeStore{standEvent: ev})

	rec := postJSON(t, h.RequestBooking, `{"stand_id":3}`, 20, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCancelBookingOK(t *testing.T) {
	store := &fakeStore{
		info: &booking.BookingInfo{
			Booking:  model.Booking{ID: 9, StandID: 3, ArtistID: 20, Status: model.BookingPending},
			EventID:  2,
			StartsAt: handlerNow.Add(24 * time.Hour),
			EndsAt:   handlerNow.Add(72 * time.Hour),
		},
		cancelled: &model.Booking{ID: 9, StandID: 3, ArtistID: 20, Status: model.BookingCancelled},
	}
	h := newHandlerFixture(store)

	rec := postJSON(t, h.CancelBooking, "", 20, map[string]string{"id": "9"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.BookingCancelled, resp.Status)
}

func TestCancelBookingForeignArtist(t *testing.T) {
	store := &fakeStore{
		info: &booking.BookingInfo{
			Booking:  model.Booking{ID: 9, StandID: 3, ArtistID: 99, Status: model.BookingPending},
			StartsAt: handlerNow.Add(24 * time.Hour),
		},
	}
	h := newHandlerFixture(store)

	rec := postJSON(t, h.CancelBooking, "", 20, map[string]string{"id": "9"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelBookingBadID(t *testing.T) {
	h := newHandlerFixture(&fakeStore{})

	rec := postJSON(t, h.CancelBooking, "", 20, map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("reason required: %w", booking.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("booking 1: %w", booking.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("gallery 1: %w", booking.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("stand 1: %w", booking.ErrConflict), http.StatusConflict},
		{fmt.Errorf("booking 1 is CANCELLED: %w", booking.ErrInvalidState), http.StatusUnprocessableEntity},
		{errors.New("driver broke"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, bookingError(c, tc.err))
		assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
	}
}
