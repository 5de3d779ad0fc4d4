package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/auth"
)

func testTokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "traveltinder",
	}
}

func TestTokenConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testTokenConfig().Validate())

	same := testTokenConfig()
	same.RefreshSecret = same.AccessSecret
	assert.ErrorIs(t, same.Validate(), auth.ErrInvalidTokenConfig)

	missing := testTokenConfig()
	missing.AccessSecret = ""
	assert.ErrorIs(t, missing.Validate(), auth.ErrInvalidTokenConfig)

	ttl := testTokenConfig()
	ttl.AccessTTL = 0
	assert.ErrorIs(t, ttl.Validate(), auth.ErrInvalidTokenConfig)
}

func TestTokenIssuer_AccessRoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := auth.NewTokenIssuer(&MockRefreshTokenStorage{}, testTokenConfig())
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(&auth.User{ID: "u1", Email: "ann@example.com", Mobile: "+1555"})
	require.NoError(t, err)

	claims, err := issuer.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "+1555", claims.Mobile)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIssuer_AccessExpired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-time.Hour)
	issuer, err := auth.NewTokenIssuer(&MockRefreshTokenStorage{}, testTokenConfig(),
		auth.WithTokenClock(func() time.Time { return past }))
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(&auth.User{ID: "u1"})
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(token)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredToken)
}

func TestTokenIssuer_KindsDoNotCross(t *testing.T) {
	t.Parallel()

	storage := &MockRefreshTokenStorage{}
	storage.On("StoreRefreshToken", mock.Anything, mock.Anything).Return(nil)
	issuer, err := auth.NewTokenIssuer(storage, testTokenConfig())
	require.NoError(t, err)

	pair, err := issuer.IssuePair(context.Background(), &auth.User{ID: "u1"})
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredToken)

	_, err = issuer.VerifyRefresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredToken)
}

func TestTokenIssuer_RefreshLifecycle(t *testing.T) {
	t.Parallel()

	var stored *auth.RefreshToken
	storage := &MockRefreshTokenStorage{}
	storage.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("*auth.RefreshToken")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*auth.RefreshToken) }).
		Return(nil).Once()

	issuer, err := auth.NewTokenIssuer(storage, testTokenConfig())
	require.NoError(t, err)

	token, err := issuer.IssueRefreshToken(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, token, stored.Token)
	assert.Equal(t, "u1", stored.UserID)
	assert.NotEmpty(t, stored.ID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), stored.ExpiresAt, 5*time.Second)

	storage.On("GetRefreshToken", mock.Anything, token).Return(stored, nil).Once()
	claims, err := issuer.VerifyRefresh(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, stored.ID, claims.ID)

	storage.On("DeleteRefreshToken", mock.Anything, token).Return(nil).Twice()
	require.NoError(t, issuer.Revoke(context.Background(), token))
	require.NoError(t, issuer.Revoke(context.Background(), token))

	storage.On("GetRefreshToken", mock.Anything, token).Return(nil, auth.ErrTokenRevoked).Once()
	_, err = issuer.VerifyRefresh(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	storage.AssertExpectations(t)
}

func TestTokenIssuer_RefreshTokensAreUnique(t *testing.T) {
	t.Parallel()

	storage := &MockRefreshTokenStorage{}
	storage.On("StoreRefreshToken", mock.Anything, mock.Anything).Return(nil)
	issuer, err := auth.NewTokenIssuer(storage, testTokenConfig())
	require.NoError(t, err)

	a, err := issuer.IssueRefreshToken(context.Background(), "u1")
	require.NoError(t, err)
	b, err := issuer.IssueRefreshToken(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenIssuer_RevokeEmptyAndAll(t *testing.T) {
	t.Parallel()

	storage := &MockRefreshTokenStorage{}
	storage.On("DeleteUserRefreshTokens", mock.Anything, "u1").Return(int64(3), nil).Once()

	issuer, err := auth.NewTokenIssuer(storage, testTokenConfig())
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(context.Background(), ""))
	require.NoError(t, issuer.RevokeAll(context.Background(), "u1"))

	storage.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything)
	storage.AssertExpectations(t)
}
