package auth

import "errors"

var (
	// ErrNilClient is returned when New is called without a provider client.
	ErrNilClient = errors.New("provider client is required")
	// ErrClosed is returned from operations after Close.
	ErrClosed = errors.New("auth manager is closed")
)
