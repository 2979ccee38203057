package ratelimiter

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultMaxCalls = 10
	defaultSpan     = 10 * time.Second
)

// Window is a sliding-window call limiter. It keeps the timestamps of
// admitted calls and trims expired ones on every admission check, so the
// recorded list never exceeds maxCalls entries.
type Window struct {
	mu       sync.Mutex
	maxCalls int
	span     time.Duration
	calls    []time.Time
	now      func() time.Time

	// Observability metrics
	admitted atomic.Int64
	rejected atomic.Int64
}

// WindowStats provides observability metrics for monitoring and debugging.
type WindowStats struct {
	Admitted int64 // Total calls admitted
	Rejected int64 // Total calls rejected
	InWindow int   // Admitted calls still inside the window
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithClock sets the time source, primarily for testing.
func WithClock(now func() time.Time) WindowOption {
	return func(w *Window) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWindow creates a limiter admitting at most maxCalls per span.
// Non-positive arguments fall back to 10 calls per 10 seconds.
func NewWindow(maxCalls int, span time.Duration, opts ...WindowOption) *Window {
	if maxCalls <= 0 {
		maxCalls = defaultMaxCalls
	}
	if span <= 0 {
		span = defaultSpan
	}

	w := &Window{
		maxCalls: maxCalls,
		span:     span,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Allow reports whether a call may proceed, recording it when admitted.
// Rejection has no side effects: the window is unchanged and a later call
// may still be admitted once older entries age out.
func (w *Window) Allow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.trim(now)

	if len(w.calls) >= w.maxCalls {
		w.rejected.Add(1)
		return false
	}

	w.calls = append(w.calls, now)
	w.admitted.Add(1)
	return true
}

// Remaining returns how many more calls the window would currently admit.
func (w *Window) Remaining() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.trim(w.now())
	return w.maxCalls - len(w.calls)
}

// Reset discards all recorded calls. Counters are preserved.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = w.calls[:0]
}

// Stats returns a snapshot of the admission counters.
func (w *Window) Stats() WindowStats {
	w.mu.Lock()
	w.trim(w.now())
	inWindow := len(w.calls)
	w.mu.Unlock()

	return WindowStats{
		Admitted: w.admitted.Load(),
		Rejected: w.rejected.Load(),
		InWindow: inWindow,
	}
}

// trim drops timestamps older than the window span. Callers must hold mu.
func (w *Window) trim(now time.Time) {
	cutoff := now.Add(-w.span)
	kept := 0
	for _, ts := range w.calls {
		if ts.After(cutoff) {
			break
		}
		kept++
	}
	if kept > 0 {
		w.calls = append(w.calls[:0], w.calls[kept:]...)
	}
}
