package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/auth"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newResolver(storage auth.UserStorage) *auth.Resolver {
	return auth.NewResolver(storage, auth.WithResolverClock(func() time.Time { return fixedNow }))
}

func TestResolver_EmailOTP_CreatesVerifiedUser(t *testing.T) {
	t.Parallel()

	storage := &MockUserStorage{}
	storage.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(nil, auth.ErrUserNotFound)
	storage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
		return u.Email == "ann@example.com" &&
			u.IsEmailVerified &&
			u.AuthProvider == auth.ProviderEmail &&
			u.FirstName == "Ann" &&
			u.LastLogin != nil && u.LastLogin.Equal(fixedNow) &&
			u.ID != ""
	})).Return(nil)

	user, created, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:      auth.KindEmailOTP,
		Email:     " Ann@Example.com ",
		FirstName: "Ann",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ann@example.com", user.Email)
	storage.AssertExpectations(t)
}

func TestResolver_MobileOTP_ExistingUser(t *testing.T) {
	t.Parallel()

	existing := &auth.User{ID: "u1", Mobile: "+15551234567", FirstName: "Bob", AuthProvider: auth.ProviderMobile}
	storage := &MockUserStorage{}
	storage.On("GetUserByMobile", mock.Anything, "+15551234567").Return(existing, nil)
	storage.On("UpdateUser", mock.Anything, existing).Return(nil)

	user, created, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:      auth.KindMobileOTP,
		Mobile:    "+1 (555) 123-4567",
		FirstName: "Robert",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, user.IsMobileVerified)
	assert.Equal(t, "Bob", user.FirstName, "existing names are never overwritten")
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, fixedNow, *user.LastLogin)
	storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestResolver_Google_LinksExistingEmailAccount(t *testing.T) {
	t.Parallel()

	existing := &auth.User{
		ID:              "u1",
		Email:           "ann@example.com",
		PasswordHash:    "hash",
		IsEmailVerified: true,
		AuthProvider:    auth.ProviderEmail,
	}
	storage := &MockUserStorage{}
	storage.On("GetUserByGoogleID", mock.Anything, "g-123").Return(nil, auth.ErrUserNotFound)
	storage.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(existing, nil)
	storage.On("UpdateUser", mock.Anything, existing).Return(nil)

	user, created, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:          auth.KindGoogle,
		Email:         "ann@example.com",
		SubjectID:     "g-123",
		FirstName:     "Ann",
		Picture:       "https://example.com/a.png",
		EmailVerified: false,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "g-123", user.GoogleID)
	assert.True(t, user.IsEmailVerified, "verification is never downgraded")
	assert.Equal(t, auth.ProviderEmail, user.AuthProvider)
	assert.Equal(t, "Ann", user.FirstName)
	assert.Equal(t, "https://example.com/a.png", user.ProfilePicture)
	storage.AssertExpectations(t)
}

func TestResolver_Google_FoundBySubject(t *testing.T) {
	t.Parallel()

	existing := &auth.User{ID: "u1", Email: "old@example.com", GoogleID: "g-123"}
	storage := &MockUserStorage{}
	storage.On("GetUserByGoogleID", mock.Anything, "g-123").Return(existing, nil)
	storage.On("UpdateUser", mock.Anything, existing).Return(nil)

	user, _, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:      auth.KindGoogle,
		Email:     "new@example.com",
		SubjectID: "g-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "old@example.com", user.Email)
	storage.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestResolver_Apple_NewUserDefaultName(t *testing.T) {
	t.Parallel()

	storage := &MockUserStorage{}
	storage.On("GetUserByAppleID", mock.Anything, "a-1").Return(nil, auth.ErrUserNotFound)
	storage.On("CreateUser", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)

	user, created, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:      auth.KindApple,
		SubjectID: "a-1",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "User", user.FirstName)
	assert.Equal(t, "a-1", user.AppleID)
	assert.Equal(t, auth.ProviderApple, user.AuthProvider)
	storage.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestResolver_EmailPassword_NeverCreates(t *testing.T) {
	t.Parallel()

	storage := &MockUserStorage{}
	storage.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, auth.ErrUserNotFound)

	_, _, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:  auth.KindEmailPassword,
		Email: "ghost@example.com",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestResolver_ConcurrentCreateRetriesLookup(t *testing.T) {
	t.Parallel()

	winner := &auth.User{ID: "u-winner", Email: "ann@example.com"}
	storage := &MockUserStorage{}
	storage.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(nil, auth.ErrUserNotFound).Once()
	storage.On("CreateUser", mock.Anything, mock.Anything).Return(auth.ErrUserExists).Once()
	storage.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(winner, nil).Once()
	storage.On("UpdateUser", mock.Anything, winner).Return(nil).Once()

	user, created, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:  auth.KindEmailOTP,
		Email: "ann@example.com",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "u-winner", user.ID)
	assert.True(t, user.IsEmailVerified)
	storage.AssertExpectations(t)
}

func TestResolver_StorageError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	storage := &MockUserStorage{}
	storage.On("GetUserByEmail", mock.Anything, "ann@example.com").Return(nil, boom)

	_, _, err := newResolver(storage).Resolve(context.Background(), auth.Identity{
		Kind:  auth.KindEmailOTP,
		Email: "ann@example.com",
	})
	assert.ErrorIs(t, err, boom)
}

func TestUser_Valid(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, (&auth.User{FirstName: "x"}).Valid(), auth.ErrNoIdentifier)
	assert.NoError(t, (&auth.User{AppleID: "a"}).Valid())
	assert.NoError(t, (&auth.User{Mobile: "+1555"}).Valid())
}

func TestPassword(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("Secret123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)

	assert.NoError(t, auth.ComparePassword(hash, "Secret123"))
	assert.ErrorIs(t, auth.ComparePassword(hash, "secret123"), auth.ErrInvalidCredentials)
	assert.ErrorIs(t, auth.ComparePassword("", "Secret123"), auth.ErrInvalidCredentials)

	_, err = auth.HashPassword("", 4)
	assert.ErrorIs(t, err, auth.ErrPasswordRequired)
}
