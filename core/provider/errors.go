package provider

import "errors"

var (
	// ErrSessionInvalid is returned when an operation requires a valid
	// session and none exists or the cached one has expired.
	ErrSessionInvalid = errors.New("session is missing or expired")
	// ErrRoleNotFound is returned when no role assignment can be resolved
	// for a user. Callers treat it as "no role", not as a failure.
	ErrRoleNotFound = errors.New("no role found for user")
	// ErrProvider wraps failures coming back from the identity provider.
	ErrProvider = errors.New("identity provider request failed")
)
