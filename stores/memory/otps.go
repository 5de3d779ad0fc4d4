package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/traveltinder/backend/pkg/otp"
)

// OTPStore is an in-memory otp.Storage.
type OTPStore struct {
	mu         sync.Mutex
	challenges map[string]*otp.Challenge
}

// NewOTPStore creates an empty OTPStore.
func NewOTPStore() *OTPStore {
	return &OTPStore{challenges: make(map[string]*otp.Challenge)}
}

func (s *OTPStore) Replace(_ context.Context, c *otp.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.challenges {
		if existing.Identifier == c.Identifier && existing.Channel == c.Channel {
			delete(s.challenges, id)
		}
	}
	cp := *c
	s.challenges[c.ID] = &cp
	return nil
}

func (s *OTPStore) IncrementAttempts(_ context.Context, identifier string, channel otp.Channel, maxAttempts int, now time.Time) (*otp.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.challenges {
		if c.Identifier != identifier || c.Channel != channel || c.Expired(now) {
			continue
		}
		if c.Attempts >= maxAttempts {
			cp := *c
			return &cp, otp.ErrAttemptsExhausted
		}
		c.Attempts++
		cp := *c
		return &cp, nil
	}
	return nil, otp.ErrChallengeNotFound
}

func (s *OTPStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[id]; !ok {
		return false, nil
	}
	delete(s.challenges, id)
	return true, nil
}

// Len returns the number of stored challenges, expired ones included.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}
