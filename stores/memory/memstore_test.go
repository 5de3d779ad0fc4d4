package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/pkg/otp"
	memstore "github.com/traveltinder/backend/stores/memory"
)

func TestUserStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.NewUserStore()

	ann := &auth.User{ID: "u1", Email: "ann@example.com", FirstName: "Ann"}
	require.NoError(t, s.CreateUser(ctx, ann))

	t.Run("lookup returns copies", func(t *testing.T) {
		u, err := s.GetUserByEmail(ctx, "ann@example.com")
		require.NoError(t, err)
		u.FirstName = "Changed"

		again, err := s.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ann", again.FirstName)
	})

	t.Run("unique email", func(t *testing.T) {
		err := s.CreateUser(ctx, &auth.User{ID: "u2", Email: "ann@example.com"})
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})

	t.Run("empty identifiers never collide", func(t *testing.T) {
		require.NoError(t, s.CreateUser(ctx, &auth.User{ID: "u3", Mobile: "+1555"}))
		require.NoError(t, s.CreateUser(ctx, &auth.User{ID: "u4", AppleID: "a-1"}))
		_, err := s.GetUserByEmail(ctx, "")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("update conflict", func(t *testing.T) {
		u, err := s.GetUserByID(ctx, "u3")
		require.NoError(t, err)
		u.Email = "ann@example.com"
		assert.ErrorIs(t, s.UpdateUser(ctx, u), auth.ErrUserExists)
	})

	t.Run("provider lookups", func(t *testing.T) {
		u, err := s.GetUserByAppleID(ctx, "a-1")
		require.NoError(t, err)
		assert.Equal(t, "u4", u.ID)

		u.GoogleID = "g-1"
		require.NoError(t, s.UpdateUser(ctx, u))
		got, err := s.GetUserByGoogleID(ctx, "g-1")
		require.NoError(t, err)
		assert.Equal(t, "u4", got.ID)

		_, err = s.GetUserByMobile(ctx, "+1999")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("update missing", func(t *testing.T) {
		assert.ErrorIs(t, s.UpdateUser(ctx, &auth.User{ID: "nope", Email: "x@example.com"}), auth.ErrUserNotFound)
	})
}

func TestOTPStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	s := memstore.NewOTPStore()

	first := &otp.Challenge{ID: "c1", Identifier: "ann@example.com", Channel: otp.ChannelEmail, Code: "111111", ExpiresAt: now.Add(time.Minute)}
	second := &otp.Challenge{ID: "c2", Identifier: "ann@example.com", Channel: otp.ChannelEmail, Code: "222222", ExpiresAt: now.Add(time.Minute)}
	mobile := &otp.Challenge{ID: "c3", Identifier: "ann@example.com", Channel: otp.ChannelMobile, Code: "333333", ExpiresAt: now.Add(time.Minute)}

	require.NoError(t, s.Replace(ctx, first))
	require.NoError(t, s.Replace(ctx, mobile))
	require.NoError(t, s.Replace(ctx, second))
	assert.Equal(t, 2, s.Len(), "replace only touches the same channel")

	c, err := s.IncrementAttempts(ctx, "ann@example.com", otp.ChannelEmail, 2, now)
	require.NoError(t, err)
	assert.Equal(t, "c2", c.ID)
	assert.Equal(t, 1, c.Attempts)

	c, err = s.IncrementAttempts(ctx, "ann@example.com", otp.ChannelEmail, 2, now)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Attempts)

	c, err = s.IncrementAttempts(ctx, "ann@example.com", otp.ChannelEmail, 2, now)
	assert.ErrorIs(t, err, otp.ErrAttemptsExhausted)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Attempts)

	_, err = s.IncrementAttempts(ctx, "ann@example.com", otp.ChannelMobile, 3, now.Add(2*time.Minute))
	assert.ErrorIs(t, err, otp.ErrChallengeNotFound, "expired challenges are invisible")

	deleted, err := s.Delete(ctx, "c2")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, "c2")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRefreshTokenStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	s := memstore.NewRefreshTokenStore(func() time.Time { return now })

	require.NoError(t, s.StoreRefreshToken(ctx, &auth.RefreshToken{Token: "t1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.StoreRefreshToken(ctx, &auth.RefreshToken{Token: "t2", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.StoreRefreshToken(ctx, &auth.RefreshToken{Token: "t3", UserID: "u2", ExpiresAt: now.Add(-time.Second)}))
	assert.ErrorIs(t, s.StoreRefreshToken(ctx, &auth.RefreshToken{Token: "t1", UserID: "u1"}), auth.ErrTokenExists)

	rec, err := s.GetRefreshToken(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.UserID)

	_, err = s.GetRefreshToken(ctx, "t3")
	assert.ErrorIs(t, err, auth.ErrTokenRevoked, "expired records are ignored")

	require.NoError(t, s.DeleteRefreshToken(ctx, "t1"))
	require.NoError(t, s.DeleteRefreshToken(ctx, "t1"))
	_, err = s.GetRefreshToken(ctx, "t1")
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	n, err := s.DeleteUserRefreshTokens(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, s.Len())
}
