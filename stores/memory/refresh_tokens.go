package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/traveltinder/backend/pkg/auth"
)

// RefreshTokenStore is an in-memory auth.RefreshTokenStorage.
type RefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*auth.RefreshToken
	now    func() time.Time
}

// NewRefreshTokenStore creates an empty RefreshTokenStore. now defaults to
// time.Now when nil.
func NewRefreshTokenStore(now func() time.Time) *RefreshTokenStore {
	if now == nil {
		now = time.Now
	}
	return &RefreshTokenStore{tokens: make(map[string]*auth.RefreshToken), now: now}
}

func (s *RefreshTokenStore) StoreRefreshToken(_ context.Context, token *auth.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token.Token]; ok {
		return auth.ErrTokenExists
	}
	cp := *token
	s.tokens[token.Token] = &cp
	return nil
}

func (s *RefreshTokenStore) GetRefreshToken(_ context.Context, token string) (*auth.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.tokens[token]
	if !ok || !rec.ExpiresAt.After(s.now()) {
		return nil, auth.ErrTokenRevoked
	}
	cp := *rec
	return &cp, nil
}

func (s *RefreshTokenStore) DeleteRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *RefreshTokenStore) DeleteUserRefreshTokens(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, rec := range s.tokens {
		if rec.UserID == userID {
			delete(s.tokens, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored tokens, expired ones included.
func (s *RefreshTokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
