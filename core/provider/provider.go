package provider

import (
	"context"

	"github.com/google/uuid"
)

// User is the cached copy of an identity owned by the provider.
// Metadata carries provider-specific attributes (display name, phone, etc.)
// and is passed through untouched.
type User struct {
	ID       uuid.UUID
	Email    string
	Metadata map[string]any
}

// AuthResult is the combined outcome of sign-in and sign-up calls.
// Either field may be nil: some providers require email confirmation before
// issuing a session, in which case only User is set.
type AuthResult struct {
	User    *User
	Session *Session
}

// Client is the identity provider boundary. Implementations must be safe for
// concurrent use; every method is a network round trip and honors ctx.
type Client interface {
	SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*AuthResult, error)
	SignOut(ctx context.Context) error

	// GetSession returns the provider's view of the current session,
	// or nil when no session exists. A nil session is not an error.
	GetSession(ctx context.Context) (*Session, error)

	// GetUser returns the currently authenticated user, or nil when the
	// provider holds no session.
	GetUser(ctx context.Context) (*User, error)

	// RefreshSession exchanges the refresh token for a new session.
	RefreshSession(ctx context.Context) (*Session, error)

	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, newPassword string) error

	// RPC invokes a named remote procedure. The result shape is
	// provider-defined (scalar, array, or object); callers must parse it
	// defensively rather than trusting the structure.
	RPC(ctx context.Context, name string, args map[string]any) (any, error)
}

// RoleQuerier is the direct read path for role assignments, bypassing the
// provider RPC. Implementations should try an optimized read first and fall
// back to the raw table ordered by recency, filtered to active rows.
type RoleQuerier interface {
	// ActiveRole returns the most recent active role for the user, or
	// ErrRoleNotFound when the user has no active role assignment.
	ActiveRole(ctx context.Context, userID uuid.UUID) (string, error)
}

// RoleWriter persists the sign-up side effects. Both calls are best-effort
// from the caller's perspective: failures are logged, never fatal.
type RoleWriter interface {
	AssignRole(ctx context.Context, userID uuid.UUID, role string) error
	CreateProfile(ctx context.Context, userID uuid.UUID, role, email string) error
}
