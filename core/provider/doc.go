// Package provider defines the boundary to the external identity provider:
// the system of record for authentication (sign-in/up/out, token issuance
// and refresh) and the remote procedures used for role lookups.
//
// The rest of the module only ever talks to the provider through the Client
// interface, so it can be backed by any hosted identity service or by a fake
// in tests. Persistent token storage belongs to the provider's own client
// library and is deliberately absent here; this module caches copies only.
//
// # Session validity
//
// Providers report expiry as unix seconds. A session is considered valid
// only while its expiry is beyond now plus a safety buffer, so tokens are
// refreshed before they actually lapse:
//
//	if sess.Valid(2 * time.Minute) {
//		// safe to use the access token
//	}
//
// # Role lookups
//
// Role resolution has two provider-side paths: the RPC method on Client
// (preferred, rate-limited by the caller) and the RoleQuerier direct read
// path used as a fallback when the RPC misbehaves. RoleWriter carries the
// best-effort sign-up side effects (role assignment, role-specific profile).
package provider
