package repositories

import (
	"context"
	"time"
)

// SessionRevocationRepository remembers signed-out session token ids until
// the tokens would have expired anyway.
type SessionRevocationRepository interface {
	RevokeSession(ctx context.Context, tokenID string, until time.Time) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
}
