package provider

import "time"

// Session is a time-bounded proof of authentication issued by the provider.
// Tokens are opaque to this module; only the expiry is interpreted.
type Session struct {
	AccessToken  string
	RefreshToken string

	// ExpiresAt is the access token expiry as unix seconds, matching the
	// provider wire format.
	ExpiresAt int64
}

// ValidAt reports whether the session is still usable at the given instant.
// The buffer shifts the cutoff earlier so callers refresh before the token
// actually lapses. A nil session is never valid.
func (s *Session) ValidAt(now time.Time, buffer time.Duration) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return time.Unix(s.ExpiresAt, 0).After(now.Add(buffer))
}

// Valid is ValidAt against the current time.
func (s *Session) Valid(buffer time.Duration) bool {
	return s.ValidAt(time.Now(), buffer)
}
