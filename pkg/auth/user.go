package auth

import (
	"context"
	"time"
)

// Provider names the mechanism that created an account.
type Provider string

const (
	ProviderEmail    Provider = "email"
	ProviderMobile   Provider = "mobile"
	ProviderGoogle   Provider = "google"
	ProviderApple    Provider = "apple"
	ProviderFacebook Provider = "facebook"
)

// User is an account. Empty strings mean "not set"; storage omits them so
// the sparse unique indexes ignore absent identifiers.
type User struct {
	ID               string
	Email            string
	Mobile           string
	PasswordHash     string
	GoogleID         string
	AppleID          string
	FacebookID       string
	FirstName        string
	LastName         string
	ProfilePicture   string
	IsEmailVerified  bool
	IsMobileVerified bool
	AuthProvider     Provider
	LastLogin        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Valid reports whether the user has at least one way to sign in.
func (u *User) Valid() error {
	if u.Email == "" && u.Mobile == "" && u.GoogleID == "" && u.AppleID == "" && u.FacebookID == "" {
		return ErrNoIdentifier
	}
	return nil
}

// HasPassword reports whether the account can use email and password login.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UserStorage persists users. Lookups return ErrUserNotFound on a miss;
// CreateUser and UpdateUser return ErrUserExists when a unique identifier
// is already taken.
type UserStorage interface {
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByMobile(ctx context.Context, mobile string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	GetUserByAppleID(ctx context.Context, appleID string) (*User, error)
}
