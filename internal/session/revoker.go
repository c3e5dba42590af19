// Package session keeps a list of refresh tokens that were logged out.
// Firebase has no server-side logout for the REST API, so the list is
// checked before a refresh is forwarded upstream.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "prevently:revoked:"
	// Firebase refresh tokens do not expire on their own; thirty days
	// outlives any dashboard session.
	DefaultTTL = 30 * 24 * time.Hour
)

type Revoker interface {
	Revoke(ctx context.Context, refreshToken string) error
	IsRevoked(ctx context.Context, refreshToken string) (bool, error)
}

type RedisRevoker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client, ttl: DefaultTTL}
}

func (r *RedisRevoker) Revoke(ctx context.Context, refreshToken string) error {
	if err := r.client.Set(ctx, tokenKey(refreshToken), 1, r.ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, refreshToken string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(refreshToken)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

// NopRevoker is used when no Redis is configured.
type NopRevoker struct{}

func (NopRevoker) Revoke(ctx context.Context, refreshToken string) error { return nil }

func (NopRevoker) IsRevoked(ctx context.Context, refreshToken string) (bool, error) {
	return false, nil
}

func tokenKey(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return keyPrefix + hex.EncodeToString(sum[:])
}
