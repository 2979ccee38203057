package refresh

import "errors"

var (
	// ErrInProgress is returned when another refresh is already running.
	// Callers should treat it as retryable.
	ErrInProgress = errors.New("refresh already in progress")
	// ErrEmptyResult is returned when the provider reports success but
	// hands back no session.
	ErrEmptyResult = errors.New("provider returned no session")
	// ErrClosed is returned after Close; the coordinator is torn down.
	ErrClosed = errors.New("refresh coordinator is closed")
)
