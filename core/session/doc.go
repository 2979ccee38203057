// Package session holds the in-process snapshot of authentication state:
// the last known user and session returned by the identity provider, plus
// the time of the last successful validation round trip.
//
// The Store is a mutable singleton shared by every caller in the process.
// It never talks to the network; freshness decisions (expiry buffers,
// validation throttling) belong to the callers that populate it.
//
// Clear is the single authoritative "log out / invalidate everything"
// operation and is safe to call any number of times.
package session
