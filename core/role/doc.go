// Package role determines the authorization role of an identity through a
// layered fallback chain, caching results so the expensive, rate-limited
// remote lookup runs as rarely as possible.
//
// # Resolution chain
//
// Resolve tries each tier in order and stops at the first success:
//
//  1. Cache hit within the TTL — returned immediately, no network.
//  2. Rate-limiter gate — when exhausted, the best available cached value
//     (possibly stale) is returned instead of blocking or failing.
//  3. Remote procedure lookup — requires a currently valid session, runs
//     under a per-call timeout with bounded retries, and parses the
//     provider's loosely shaped result defensively.
//  4. Direct data query — an optimized read path first, then the raw table
//     ordered by recency, filtered to active rows.
//  5. Emergency retry — one more direct-query attempt when tiers 3–4
//     failed with a hard error.
//
// A successful tier writes through to the cache. When everything fails,
// Resolve falls back to a stale cache entry if one exists, and otherwise
// returns the empty string: callers treat "" as "no role", never as an
// error.
//
// Hint is a deliberately separate, non-authoritative email heuristic. It
// takes no part in Resolve and never writes anywhere; it only produces a
// suggestion for manual confirmation by an administrator.
package role
