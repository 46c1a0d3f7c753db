package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

// backends runs fn against both implementations
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
	t.Run("redis", func(t *testing.T) {
		s, _ := newRedisStore(t)
		fn(t, s)
	})
}

func TestStoreGetSetDelete(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, ok, err := s.Get(ctx, "lockout_1.2.3.4")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Set(ctx, "lockout_1.2.3.4", "1", time.Minute))
		val, ok, err := s.Get(ctx, "lockout_1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1", val)

		require.NoError(t, s.Delete(ctx, "lockout_1.2.3.4"))
		_, ok, err = s.Get(ctx, "lockout_1.2.3.4")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStoreIncr(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i := int64(1); i <= 3; i++ {
			n, err := s.Incr(ctx, "failed_attempts_1.2.3.4", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, i, n)
		}
	})
}

func TestSlidingWindow(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		start := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
		key := "rate_limit_1.2.3.4_contact_create"

		for i := 0; i < 3; i++ {
			allowed, count, err := s.SlidingWindow(ctx, key, start.Add(time.Duration(i)*time.Second), time.Minute, 3)
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, i+1, count)
		}

		allowed, count, err := s.SlidingWindow(ctx, key, start.Add(10*time.Second), time.Minute, 3)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 3, count)

		// first hit leaves the window at start+60s
		allowed, _, err = s.SlidingWindow(ctx, key, start.Add(60*time.Second), time.Minute, 3)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, _, err = s.SlidingWindow(ctx, key, start.Add(60*time.Second+time.Millisecond), time.Minute, 3)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestMemoryStoreExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore().WithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", 5*time.Second))
	clock.Advance(4 * time.Second)
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)

	// Incr restarts the counter after expiry and refreshes the TTL
	n, _ := s.Incr(ctx, "c", 10*time.Second)
	assert.Equal(t, int64(1), n)
	clock.Advance(8 * time.Second)
	n, _ = s.Incr(ctx, "c", 10*time.Second)
	assert.Equal(t, int64(2), n)
	clock.Advance(8 * time.Second)
	n, _ = s.Incr(ctx, "c", 10*time.Second)
	assert.Equal(t, int64(3), n)
	clock.Advance(11 * time.Second)
	n, _ = s.Incr(ctx, "c", 10*time.Second)
	assert.Equal(t, int64(1), n)
}

func TestRedisStoreExpiry(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := s.Incr(ctx, "failed_attempts_9.9.9.9", 300*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, mr.TTL("failed_attempts_9.9.9.9"))

	mr.FastForward(301 * time.Second)
	_, ok, err := s.Get(ctx, "failed_attempts_9.9.9.9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	s := NewRedisStore(client)

	_, _, err := s.SlidingWindow(context.Background(), "k", time.Now(), time.Minute, 1)
	assert.Error(t, err)
}
