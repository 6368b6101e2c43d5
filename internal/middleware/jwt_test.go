package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artishok/stand-booking/internal/access"
	"github.com/artishok/stand-booking/internal/utils"
)

const testSecret = "unit-test-secret"

// denySet denies exactly the ids it contains.
type denySet map[string]bool

func (d denySet) IsDenied(_ context.Context, jti string) bool { return d[jti] }

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := mw(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, captured
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, access.ClaimArtist, 5)
	require.NoError(t, err)

	rec, c := doRequest(t, JWTAuth(testSecret, nil), "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, c)
	assert.Equal(t, uint64(42), UserID(c))
	assert.Equal(t, access.ClaimArtist, c.Get("role"))
	assert.Equal(t, tok.ID, c.Get("jti"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret, nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, access.ClaimArtist, 5)
	require.NoError(t, err)

	rec, _ := doRequest(t, JWTAuth(testSecret, nil), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, access.ClaimArtist, -5)
	require.NoError(t, err)

	rec, _ := doRequest(t, JWTAuth(testSecret, nil), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthDeniedToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, access.ClaimOwner, 5)
	require.NoError(t, err)

	rec, _ := doRequest(t, JWTAuth(testSecret, denySet{tok.ID: true}), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, JWTAuth(testSecret, denySet{}), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role interface{}, allowed ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		h := RequireRole(allowed...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(access.ClaimOwner, access.ClaimOwner))
	assert.Equal(t, http.StatusOK, run(access.ClaimAdmin, access.ClaimOwner, access.ClaimAdmin))
	assert.Equal(t, http.StatusForbidden, run(access.ClaimArtist, access.ClaimOwner))
	assert.Equal(t, http.StatusForbidden, run(nil, access.ClaimOwner))
	assert.Equal(t, http.StatusForbidden, run("MODERATOR", access.ClaimOwner))
}

func TestCurrentIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("user_id", float64(7))
	c.Set("role", access.ClaimOwner)

	id := CurrentIdentity(c)
	assert.Equal(t, uint64(7), id.UserID)
	assert.Equal(t, access.RoleOwner, id.Role)

	empty := CurrentIdentity(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	assert.Equal(t, access.Identity{}, empty)
}
