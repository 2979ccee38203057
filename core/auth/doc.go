// Package auth is the facade over session and authorization state: it
// composes the session store, the refresh coordinator, and the role
// resolver behind a single Manager that the rest of the application talks
// to. No caller reaches into the underlying stores directly.
//
// # Usage
//
//	manager, err := auth.New(client,
//		auth.WithRoleQuerier(roleStore),
//		auth.WithRoleWriter(roleStore),
//		auth.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	defer manager.Close()
//
//	user, err := manager.CurrentUser(ctx, true)
//	if err != nil || user == nil {
//		// unauthenticated
//	}
//	if !manager.HasRole(ctx, role.RoleAdmin) {
//		// unauthorized
//	}
//
// Managers are process-wide singletons by convention, but nothing enforces
// it: construct isolated instances freely in tests and inject the one
// instance via dependency wiring in production.
//
// # Error behavior
//
// Sign-in/up/out failures are wrapped and surfaced to the caller for
// user-facing messaging. Role resolution never fails: UserRole returns ""
// for "no role" and callers treat that as unauthorized.
package auth
