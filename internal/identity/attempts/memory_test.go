package attempts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestLimiter() (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(Config{})
	l.now = clock.Now
	return l, clock
}

func allowN(t *testing.T, l *MemoryLimiter, key string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ok, err := l.Allow(context.Background(), key)
		require.NoError(t, err)
		require.True(t, ok, "attempt %d", i+1)
	}
}

func TestMemoryLimiter_LocksAfterMaxAttempts(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	allowN(t, l, "user:1", DefaultMaxAttempts)

	ok, err := l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "user:2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiter_LockoutExpires(t *testing.T) {
	l, clock := newTestLimiter()
	ctx := context.Background()

	allowN(t, l, "user:1", DefaultMaxAttempts)

	clock.now = clock.now.Add(DefaultLockout)
	ok, _ := l.Allow(ctx, "user:1")
	assert.False(t, ok, "lockout lasts the whole window")

	clock.now = clock.now.Add(time.Second)
	ok, _ = l.Allow(ctx, "user:1")
	assert.True(t, ok)
}

func TestMemoryLimiter_ResetOnSuccess(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	allowN(t, l, "user:1", DefaultMaxAttempts)
	require.NoError(t, l.Reset(ctx, "user:1"))

	allowN(t, l, "user:1", DefaultMaxAttempts)
}

func TestMemoryLimiter_Release(t *testing.T) {
	l, _ := newTestLimiter()
	ctx := context.Background()

	allowN(t, l, "user:1", DefaultMaxAttempts)
	require.NoError(t, l.Release(ctx, "user:1"))

	ok, err := l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Release(ctx, "user:2"))
	_, tracked := l.records["user:2"]
	assert.False(t, tracked)
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	l, clock := newTestLimiter()

	allowN(t, l, "user:1", 1)
	assert.Equal(t, 0, l.Sweep())

	clock.now = clock.now.Add(DefaultLockout + time.Minute)
	assert.Equal(t, 1, l.Sweep())
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{MaxAttempts: 3}.withDefaults()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, DefaultLockout, cfg.Lockout)
}
