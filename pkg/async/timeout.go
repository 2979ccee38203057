package async

import (
	"context"
	"time"
)

// WithTimeout runs fn raced against the given duration and returns whichever
// settles first: fn's result or ErrTimeout.
//
// fn receives the caller's context unmodified. When the timer wins, fn keeps
// running in the background and its eventual result is discarded; this is
// deliberate, since provider calls offer no cooperative cancellation. The
// result channel is buffered so the losing goroutine never leaks.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}

	var zero T
	ch := make(chan outcome, 1)

	go func() {
		val, err := fn(ctx)
		ch <- outcome{val: val, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out.val, out.err
	case <-timer.C:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
