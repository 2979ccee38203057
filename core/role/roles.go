package role

import "strings"

// Well-known roles of the collection platform.
const (
	RoleFarmer = "farmer"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// Hint guesses a role from substrings of an email address.
//
// The guess is non-authoritative: it is never cached, never written to
// authorization state, and must only be surfaced as a suggestion for manual
// confirmation. Production role assignment always comes from the provider
// or the role store.
func Hint(email string) (string, bool) {
	addr := strings.ToLower(strings.TrimSpace(email))
	if addr == "" {
		return "", false
	}

	switch {
	case strings.Contains(addr, "admin"):
		return RoleAdmin, true
	case strings.Contains(addr, "staff"), strings.Contains(addr, "collector"):
		return RoleStaff, true
	case strings.Contains(addr, "farmer"):
		return RoleFarmer, true
	}
	return "", false
}
