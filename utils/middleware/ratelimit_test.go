package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAttemptStoreHit(t *testing.T) {
	t.Parallel()

	store := NewMemoryAttemptStore(time.Minute)
	ctx := context.Background()

	count, remaining, err := store.Hit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Greater(t, remaining, time.Duration(0))

	count, _, err = store.Hit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// A different key starts its own counter
	count, _, err = store.Hit(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryAttemptStoreWindowExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryAttemptStore(50 * time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := store.Hit(ctx, "10.0.0.1")
		require.NoError(t, err)
	}

	time.Sleep(60 * time.Millisecond)

	// The window elapsed, counting starts over
	count, _, err := store.Hit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryAttemptStoreReset(t *testing.T) {
	t.Parallel()

	store := NewMemoryAttemptStore(time.Minute)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _, err := store.Hit(ctx, "10.0.0.1")
		require.NoError(t, err)
	}

	require.NoError(t, store.Reset(ctx, "10.0.0.1"))

	count, _, err := store.Hit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryAttemptStoreSweep(t *testing.T) {
	t.Parallel()

	store := NewMemoryAttemptStore(30 * time.Millisecond)
	ctx := context.Background()

	_, _, err := store.Hit(ctx, "10.0.0.1")
	require.NoError(t, err)
	_, _, err = store.Hit(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	time.Sleep(40 * time.Millisecond)
	store.Sweep()

	assert.Equal(t, 0, store.Len())
}

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(NewMemoryAttemptStore(time.Minute), 3)

	app := fiber.New()
	app.Post("/sign-in", limiter.Limit(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/sign-in", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/sign-in", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestRateLimiterClearAttempts(t *testing.T) {
	t.Parallel()

	store := NewMemoryAttemptStore(time.Minute)
	limiter := NewRateLimiter(store, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := store.Hit(ctx, "10.0.0.1")
		require.NoError(t, err)
	}

	limiter.ClearAttempts(ctx, "10.0.0.1")

	count, _, err := store.Hit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
