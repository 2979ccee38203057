package ratelimiter

import "errors"

// ErrRateLimitExceeded reports that the window is full. Allow never returns
// it directly; callers use it for logging and error wrapping when they
// degrade to cached data.
var ErrRateLimitExceeded = errors.New("rate limit exceeded")
