package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/traveltinder/backend/pkg/logger"
	"github.com/traveltinder/backend/pkg/sanitizer"
)

// defaultAppleFirstName is used when Apple shares no name, which happens on
// every sign-in after the first.
const defaultAppleFirstName = "User"

// Resolver finds or creates the account behind a verified Identity and links
// provider ids to existing accounts with the same email.
type Resolver struct {
	users  UserStorage
	logger *slog.Logger
	now    func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger.
func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// WithResolverClock overrides time.Now.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver creates a Resolver.
func NewResolver(users UserStorage, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		users:  users,
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the user for id, creating one when none matches.
// created reports whether a new account was made.
func (r *Resolver) Resolve(ctx context.Context, id Identity) (*User, bool, error) {
	id.Email = sanitizer.NormalizeEmail(id.Email)
	id.Mobile = sanitizer.NormalizeMobile(id.Mobile)

	user, err := r.lookup(ctx, id)
	switch {
	case err == nil:
		if err := r.merge(ctx, user, id); err != nil {
			return nil, false, err
		}
		return user, false, nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, false, err
	case id.Kind == KindEmailPassword:
		return nil, false, ErrInvalidCredentials
	}

	user, err = r.create(ctx, id)
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, ErrUserExists) {
		return nil, false, err
	}

	// Lost a race with a concurrent first sign-in; the other request's
	// account is now visible.
	user, err = r.lookup(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if err := r.merge(ctx, user, id); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

func (r *Resolver) lookup(ctx context.Context, id Identity) (*User, error) {
	switch id.Kind {
	case KindEmailPassword, KindEmailOTP:
		if id.Email == "" {
			return nil, ErrUserNotFound
		}
		return r.users.GetUserByEmail(ctx, id.Email)
	case KindMobileOTP:
		if id.Mobile == "" {
			return nil, ErrUserNotFound
		}
		return r.users.GetUserByMobile(ctx, id.Mobile)
	case KindGoogle, KindApple:
		return r.lookupProvider(ctx, id)
	default:
		return nil, fmt.Errorf("auth: unknown identity kind %q", id.Kind)
	}
}

func (r *Resolver) lookupProvider(ctx context.Context, id Identity) (*User, error) {
	if id.SubjectID != "" {
		get := r.users.GetUserByGoogleID
		if id.Kind == KindApple {
			get = r.users.GetUserByAppleID
		}
		user, err := get(ctx, id.SubjectID)
		if err == nil || !errors.Is(err, ErrUserNotFound) {
			return user, err
		}
	}
	if id.Email == "" {
		return nil, ErrUserNotFound
	}
	return r.users.GetUserByEmail(ctx, id.Email)
}

// merge links id into an existing account. Verification flags only go up and
// profile fields are filled only when empty.
func (r *Resolver) merge(ctx context.Context, user *User, id Identity) error {
	switch id.Kind {
	case KindGoogle:
		if user.GoogleID == "" && id.SubjectID != "" {
			user.GoogleID = id.SubjectID
			r.logger.InfoContext(ctx, "linked provider", logger.UserID(user.ID), logger.Provider(string(ProviderGoogle)))
		}
		if id.EmailVerified {
			user.IsEmailVerified = true
		}
	case KindApple:
		if user.AppleID == "" && id.SubjectID != "" {
			user.AppleID = id.SubjectID
			r.logger.InfoContext(ctx, "linked provider", logger.UserID(user.ID), logger.Provider(string(ProviderApple)))
		}
		if id.EmailVerified {
			user.IsEmailVerified = true
		}
	case KindEmailOTP:
		user.IsEmailVerified = true
	case KindMobileOTP:
		user.IsMobileVerified = true
	}

	if user.Email == "" && id.Email != "" {
		user.Email = id.Email
	}
	if user.FirstName == "" {
		user.FirstName = id.FirstName
	}
	if user.LastName == "" {
		user.LastName = id.LastName
	}
	if user.ProfilePicture == "" {
		user.ProfilePicture = id.Picture
	}

	now := r.now()
	user.LastLogin = &now
	user.UpdatedAt = now

	if err := r.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *Resolver) create(ctx context.Context, id Identity) (*User, error) {
	now := r.now()
	user := &User{
		ID:             uuid.NewString(),
		Email:          id.Email,
		Mobile:         id.Mobile,
		FirstName:      id.FirstName,
		LastName:       id.LastName,
		ProfilePicture: id.Picture,
		AuthProvider:   id.Kind.Provider(),
		LastLogin:      &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	switch id.Kind {
	case KindEmailOTP:
		user.IsEmailVerified = true
	case KindMobileOTP:
		user.IsMobileVerified = true
	case KindGoogle:
		user.GoogleID = id.SubjectID
		user.IsEmailVerified = id.EmailVerified
	case KindApple:
		user.AppleID = id.SubjectID
		user.IsEmailVerified = id.EmailVerified
		if user.FirstName == "" {
			user.FirstName = defaultAppleFirstName
		}
	}

	if err := user.Valid(); err != nil {
		return nil, err
	}
	if err := r.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	r.logger.InfoContext(ctx, "user created",
		logger.UserID(user.ID),
		logger.Provider(string(user.AuthProvider)),
		logger.Component("resolver"),
	)
	return user, nil
}
