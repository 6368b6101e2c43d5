package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenClaims(t *testing.T) {
	const secret = "test-secret"

	tok, err := NewAccessToken(secret, 42, "ARTIST", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.NotEmpty(t, tok.ID)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "ARTIST", claims["role"])
	assert.Equal(t, tok.ID, claims["jti"])
	assert.InDelta(t, time.Now().UTC().Add(15*time.Minute).Unix(), int64(claims["exp"].(float64)), 5)
}

func TestNewAccessTokenUniqueIDs(t *testing.T) {
	a, err := NewAccessToken("s", 1, "ADMIN", 5)
	require.NoError(t, err)
	b, err := NewAccessToken("s", 1, "ADMIN", 5)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("right", 1, "ARTIST", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	tok, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.Len(t, tok.Raw, 96)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), tok.Exp, 5*time.Second)
}

func TestHashRefreshRawDeterministic(t *testing.T) {
	h1 := HashRefreshRaw("abc")
	h2 := HashRefreshRaw("abc")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashRefreshRaw("abd"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "other"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret"))
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	// Out-of-range costs hash at the bcrypt default instead of failing.
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("s3cret", cost)
		require.NoError(t, err, "cost=%d", cost)
		assert.True(t, VerifyPassword(hash, "s3cret"), "cost=%d", cost)
	}
}
