package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DenylistRepo stores revoked access token ids (jti claims) in Redis.
// Logout writes the token id with a TTL equal to the token's remaining
// lifetime, so entries expire on their own once the token would have
// died anyway. A nil Redis client degrades to an always-allow denylist,
// mirroring how the rate limiter and response cache behave without
// Redis: authentication still works, revocation is just best-effort.
type DenylistRepo struct {
	rdb *redis.Client
}

// NewDenylistRepo constructs a DenylistRepo. rdb may be nil.
func NewDenylistRepo(rdb *redis.Client) *DenylistRepo {
	return &DenylistRepo{rdb: rdb}
}

func denyKey(jti string) string { return "denylist:jti:" + jti }

// Deny records the token id as revoked for the given TTL. Non-positive
// TTLs are ignored: the token has already expired.
func (r *DenylistRepo) Deny(ctx context.Context, jti string, ttl time.Duration) error {
	if r.rdb == nil || jti == "" || ttl <= 0 {
		return nil
	}
	return r.rdb.SetEx(ctx, denyKey(jti), "1", ttl).Err()
}

// IsDenied reports whether the token id has been revoked. Redis errors
// are swallowed and treated as not-denied so an outage does not lock
// everyone out.
func (r *DenylistRepo) IsDenied(ctx context.Context, jti string) bool {
	if r.rdb == nil || jti == "" {
		return false
	}
	n, err := r.rdb.Exists(ctx, denyKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
