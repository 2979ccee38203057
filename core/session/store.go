package session

import (
	"sync"
	"time"

	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
)

// Store caches the last known user/session pair and the last validation
// time. All methods are safe for concurrent use. Returned pointers must be
// treated as read-only; they are superseded wholesale on refresh or sign-in.
type Store struct {
	mu             sync.RWMutex
	user           *provider.User
	current        *provider.Session
	lastValidation time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// User returns the cached user, or nil when none is known.
func (s *Store) User() *provider.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Session returns the cached session, or nil when none is known.
func (s *Store) Session() *provider.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrent replaces both the cached user and session, as happens on
// sign-in and sign-up.
func (s *Store) SetCurrent(user *provider.User, sess *provider.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.current = sess
}

// SetSession replaces only the cached session, preserving the user.
// Used by refresh, which rotates tokens without changing identity.
func (s *Store) SetSession(sess *provider.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
}

// SetUser replaces only the cached user.
func (s *Store) SetUser(user *provider.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// LastValidation returns when the session was last validated against the
// provider. The zero time means never.
func (s *Store) LastValidation() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastValidation
}

// MarkValidated records a completed validation round trip.
func (s *Store) MarkValidated(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastValidation = at
}

// Clear wipes the cached user, session, and validation time. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.current = nil
	s.lastValidation = time.Time{}
}
