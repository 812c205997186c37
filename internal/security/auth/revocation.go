package auth

import (
	"context"
	"time"

	"github.com/localite/user-service/pkg/cache"
)

// TokenStore records tokens revoked by logout until they would have
// expired anyway. Auth middleware rejects revoked tokens.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryTokenStore is the in-process deny list used when no Redis is
// configured, and in tests.
type MemoryTokenStore struct {
	entries *cache.Cache
}

// NewMemoryTokenStore creates an in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: cache.New()}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.entries.Purge()
	s.entries.Set(token, "revoked", ttl)
	return nil
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	_, found := s.entries.Get(token)
	return found, nil
}
