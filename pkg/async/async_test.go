package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanKosgey/cow-connect-app-sub007/pkg/async"
)

func TestExec(t *testing.T) {
	t.Parallel()

	t.Run("resolves with the function result", func(t *testing.T) {
		t.Parallel()

		var got string
		future := async.Exec(context.Background(), "hello", func(_ context.Context, s string) error {
			got = s
			return nil
		})

		require.NoError(t, future.Await())
		assert.Equal(t, "hello", got)
		assert.True(t, future.IsComplete())
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		future := async.Exec(context.Background(), 0, func(context.Context, int) error {
			return wantErr
		})

		assert.ErrorIs(t, future.Await(), wantErr)
	})

	t.Run("pre-cancelled context short-circuits", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		future := async.Exec(ctx, 0, func(context.Context, int) error {
			ran = true
			return nil
		})

		assert.ErrorIs(t, future.Await(), context.Canceled)
		assert.False(t, ran)
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		future := async.Exec(context.Background(), 0, func(context.Context, int) error {
			time.Sleep(200 * time.Millisecond)
			return nil
		})

		assert.ErrorIs(t, future.AwaitWithTimeout(10*time.Millisecond), async.ErrTimeout)
		require.NoError(t, future.Await())
	})
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("returns the operation result when it wins", func(t *testing.T) {
		t.Parallel()

		got, err := async.WithTimeout(context.Background(), time.Second, func(context.Context) (int, error) {
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("returns ErrTimeout when the timer wins", func(t *testing.T) {
		t.Parallel()

		started := time.Now()
		_, err := async.WithTimeout(context.Background(), 20*time.Millisecond, func(context.Context) (int, error) {
			time.Sleep(time.Second)
			return 0, nil
		})

		assert.ErrorIs(t, err, async.ErrTimeout)
		assert.Less(t, time.Since(started), 500*time.Millisecond, "must not wait for the slow branch")
	})

	t.Run("propagates operation errors", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("provider down")
		_, err := async.WithTimeout(context.Background(), time.Second, func(context.Context) (int, error) {
			return 0, wantErr
		})

		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		_, err := async.WithTimeout(ctx, time.Second, func(context.Context) (int, error) {
			time.Sleep(time.Second)
			return 0, nil
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
