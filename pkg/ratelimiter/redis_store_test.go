package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/ratelimiter"
)

// Runs against a real server when TEST_REDIS_URL is set.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	store := ratelimiter.NewRedisStore(client, "test:ratelimit:")
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)

	ctx := context.Background()
	key := uuid.NewString()
	t.Cleanup(func() { _ = b.Reset(ctx, key) })

	for i := 1; i >= 0; i-- {
		res, err := b.Allow(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, i, res.Remaining)
	}

	res, err := b.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.True(t, res.ResetAt.After(time.Now()))

	status, err := b.Status(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Remaining)

	require.NoError(t, b.Reset(ctx, key))
	res, err = b.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}
