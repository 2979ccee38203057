package ratelimiter_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DanKosgey/cow-connect-app-sub007/pkg/ratelimiter"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestWindowAllow(t *testing.T) {
	t.Parallel()

	t.Run("rejects the call over the limit", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		window := ratelimiter.NewWindow(10, 10*time.Second, ratelimiter.WithClock(clock.Now))

		for i := 0; i < 10; i++ {
			assert.True(t, window.Allow(), "call %d should be admitted", i+1)
			clock.Advance(100 * time.Millisecond)
		}

		assert.False(t, window.Allow(), "11th call inside the window must be rejected")
	})

	t.Run("rejection has no side effects", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		window := ratelimiter.NewWindow(2, time.Second, ratelimiter.WithClock(clock.Now))

		assert.True(t, window.Allow())
		assert.True(t, window.Allow())
		assert.False(t, window.Allow())
		assert.False(t, window.Allow())

		// Once the first two calls age out, admission resumes immediately;
		// the rejected calls were never recorded.
		clock.Advance(1100 * time.Millisecond)
		assert.True(t, window.Allow())
		assert.Equal(t, 1, window.Remaining())
	})

	t.Run("expired entries are trimmed", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		window := ratelimiter.NewWindow(3, time.Second, ratelimiter.WithClock(clock.Now))

		assert.True(t, window.Allow())
		clock.Advance(600 * time.Millisecond)
		assert.True(t, window.Allow())
		assert.True(t, window.Allow())
		assert.False(t, window.Allow())

		// First entry leaves the window, freeing one slot.
		clock.Advance(500 * time.Millisecond)
		assert.True(t, window.Allow())
		assert.False(t, window.Allow())
	})

	t.Run("defaults applied for invalid arguments", func(t *testing.T) {
		t.Parallel()

		window := ratelimiter.NewWindow(0, 0)
		assert.Equal(t, 10, window.Remaining())
	})
}

func TestWindowReset(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	window := ratelimiter.NewWindow(2, time.Minute, ratelimiter.WithClock(clock.Now))

	assert.True(t, window.Allow())
	assert.True(t, window.Allow())
	assert.False(t, window.Allow())

	window.Reset()
	assert.Equal(t, 2, window.Remaining())
	assert.True(t, window.Allow())
}

func TestWindowStats(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	window := ratelimiter.NewWindow(2, time.Minute, ratelimiter.WithClock(clock.Now))

	window.Allow()
	window.Allow()
	window.Allow()

	stats := window.Stats()
	assert.Equal(t, int64(2), stats.Admitted)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.Equal(t, 2, stats.InWindow)
}

func TestWindowConcurrentAccess(t *testing.T) {
	t.Parallel()

	window := ratelimiter.NewWindow(50, time.Minute)

	var wg sync.WaitGroup
	var admitted atomic.Int64

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if window.Allow() {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), admitted.Load(), "exactly maxCalls goroutines may be admitted")
}
