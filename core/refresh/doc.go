// Package refresh coordinates session refresh against the identity
// provider so that bursts of callers produce a single provider round trip.
//
// # State machine
//
// A refresh request moves through Idle → Debouncing → Refreshing →
// {Success, Failed} → Idle:
//
//   - Debouncing collapses rapid successive requests into one deferred
//     attempt (default window 1s).
//   - Only one provider refresh is ever in flight. A caller whose debounce
//     elapses while another refresh is running receives ErrInProgress,
//     which is retryable, not fatal.
//   - The provider call races a timeout (default 10s). A defensive safety
//     timer (timeout + 5s) forcibly clears the in-flight flag even if the
//     normal completion path never fires, so a hung provider call cannot
//     lock refreshes out permanently. The safety timer firing is an
//     anomaly: it is logged at Warn and counted in Stats, never silently
//     absorbed.
//
// RefreshSession wraps the primitive with bounded exponential-backoff
// retries (default 3 attempts with jitter). Concurrent RefreshSession
// callers share a single in-flight attempt chain via singleflight and all
// receive its result.
package refresh
