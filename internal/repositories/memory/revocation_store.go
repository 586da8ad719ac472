// Package memory holds process-local fallbacks for stores that normally live
// outside the backend.
package memory

import (
	"context"
	"sync"
	"time"

	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
)

// RevocationStore keeps revoked session token ids in memory. It is used when
// no Redis is configured, so revocations are lost on restart.
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

var _ portsrepo.SessionRevocationRepository = (*RevocationStore)(nil)

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: map[string]time.Time{}, now: time.Now}
}

func (s *RevocationStore) RevokeSession(_ context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.revoked[tokenID] = until
	return nil
}

func (s *RevocationStore) IsSessionRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *RevocationStore) sweepLocked() {
	now := s.now()
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
		}
	}
}
