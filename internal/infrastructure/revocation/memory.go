package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps revoked tokens in a mutex-guarded map, suitable for
// single-process deployments. Entries whose token expiry has passed are
// purged lazily on each Revoke, so the set is bounded by the number of
// logouts within one token lifetime.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token digest -> token expiry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, k)
		}
	}
	if expiresAt.After(now) {
		s.revoked[digest(token)] = expiresAt
	}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	exp, ok := s.revoked[digest(token)]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	// An entry past its token expiry no longer matters; the token itself
	// fails validation first.
	return exp.After(s.now()), nil
}

// Len reports the number of live entries, for tests and debugging.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

var _ Store = (*MemoryStore)(nil)
