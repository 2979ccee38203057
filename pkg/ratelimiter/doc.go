// Package ratelimiter provides a sliding-window call limiter.
//
// The sliding-window algorithm works by:
//  1. Recording the timestamp of every admitted call
//  2. Discarding timestamps older than the window span on each admission check
//  3. Admitting a call only while fewer than the maximum remain in the window
//  4. Leaving state untouched on rejection (no side effects)
//
// It is intended for guarding expensive, provider-rate-limited operations
// such as remote role lookups: on rejection the caller degrades to cached
// data instead of failing.
//
// # Usage
//
//	// At most 10 calls per 10 seconds.
//	window := ratelimiter.NewWindow(10, 10*time.Second)
//
//	if window.Allow() {
//		role, err = fetchRemoteRole(ctx, userID)
//	} else {
//		role = lastCachedRole // possibly stale, better than nothing
//	}
//
// Window is safe for concurrent use. Stats exposes admission counters for
// observability.
package ratelimiter
