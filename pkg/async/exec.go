package async

import (
	"context"
	"time"
)

// ExecFuture represents the result of an asynchronous computation that only
// returns an error.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Await waits for the asynchronous function to complete and returns its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout waits for completion up to the given duration.
// Returns ErrTimeout if the function has not finished in time.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete checks whether the function has finished without blocking.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec executes fn asynchronously with the given parameter.
// The returned future resolves with fn's error once it completes.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents running the function when the context is
		// already cancelled.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.err = fn(ctx, param)
	}()

	return f
}
