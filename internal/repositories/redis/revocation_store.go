// Package redis stores revoked session token ids in Redis so every backend
// instance sees a sign-out.
package redis

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const revokedSessionKeyPrefix = "kontrollavgift:revoked:"

type cmdable interface {
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Exists(context.Context, ...string) *redis.IntCmd
}

// RevocationStore is a Redis-backed portsrepo.SessionRevocationRepository.
// Keys expire together with the token they revoke.
type RevocationStore struct {
	store cmdable
	now   func() time.Time
}

var _ portsrepo.SessionRevocationRepository = (*RevocationStore)(nil)

// NewRevocationStore wraps an existing client; its lifecycle stays with the caller.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{store: client, now: time.Now}
}

// NewClient parses a redis:// URL and verifies connectivity.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RevocationStore) RevokeSession(ctx context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		// already expired, nothing left to revoke
		return nil
	}
	if err := s.store.Set(ctx, revokedSessionKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := s.store.Exists(ctx, revokedSessionKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return n > 0, nil
}
