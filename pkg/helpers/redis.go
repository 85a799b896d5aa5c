package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// TokenDenylist records revoked token ids until their natural expiry.
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

func keyRevokedToken(jti string) string { return "auth:revoked:" + jti }

// Revoke denylists jti for ttl. A non-positive ttl means the token has
// already expired and nothing is stored.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, keyRevokedToken(jti), "1", ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, keyRevokedToken(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
