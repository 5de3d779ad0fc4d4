package memstore

import (
	"context"
	"sync"

	"github.com/traveltinder/backend/pkg/auth"
)

// UserStore is an in-memory auth.UserStorage.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*auth.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*auth.User)}
}

func (s *UserStore) CreateUser(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return auth.ErrUserExists
	}
	if s.conflicts(user) {
		return auth.ErrUserExists
	}
	s.users[user.ID] = clone(user)
	return nil
}

func (s *UserStore) UpdateUser(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return auth.ErrUserNotFound
	}
	if s.conflicts(user) {
		return auth.ErrUserExists
	}
	s.users[user.ID] = clone(user)
	return nil
}

func (s *UserStore) GetUserByID(_ context.Context, id string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return clone(u), nil
	}
	return nil, auth.ErrUserNotFound
}

func (s *UserStore) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	return s.find(func(u *auth.User) string { return u.Email }, email)
}

func (s *UserStore) GetUserByMobile(_ context.Context, mobile string) (*auth.User, error) {
	return s.find(func(u *auth.User) string { return u.Mobile }, mobile)
}

func (s *UserStore) GetUserByGoogleID(_ context.Context, googleID string) (*auth.User, error) {
	return s.find(func(u *auth.User) string { return u.GoogleID }, googleID)
}

func (s *UserStore) GetUserByAppleID(_ context.Context, appleID string) (*auth.User, error) {
	return s.find(func(u *auth.User) string { return u.AppleID }, appleID)
}

// Len returns the number of stored users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *UserStore) find(field func(*auth.User) string, value string) (*auth.User, error) {
	if value == "" {
		return nil, auth.ErrUserNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if field(u) == value {
			return clone(u), nil
		}
	}
	return nil, auth.ErrUserNotFound
}

// conflicts reports whether another user already holds one of user's
// unique identifiers. Must be called with the lock held.
func (s *UserStore) conflicts(user *auth.User) bool {
	for id, u := range s.users {
		if id == user.ID {
			continue
		}
		if same(u.Email, user.Email) || same(u.Mobile, user.Mobile) ||
			same(u.GoogleID, user.GoogleID) || same(u.AppleID, user.AppleID) {
			return true
		}
	}
	return false
}

func same(a, b string) bool {
	return a != "" && a == b
}

func clone(u *auth.User) *auth.User {
	c := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}
