package role

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is a cached role with its fetch time. The cache stores entries
// unconditionally and leaves staleness judgment to the caller, so expired
// entries stay available as an emergency fallback when every remote path
// fails.
type Entry struct {
	Role     string
	CachedAt time.Time
}

// FreshAt reports whether the entry is still inside the TTL at the given
// instant.
func (e Entry) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CachedAt) < ttl
}

// Cache is the role cache boundary. Implementations must be safe for
// concurrent use. The in-memory implementation lives in this package; a
// Redis-backed one is provided under integration/database/redis.
type Cache interface {
	// Get returns the entry for userID and whether one exists. Expired
	// entries are returned as-is; only the caller knows the TTL.
	Get(ctx context.Context, userID uuid.UUID) (Entry, bool, error)

	// Set records the role for userID with the current timestamp,
	// overwriting any previous entry.
	Set(ctx context.Context, userID uuid.UUID, role string) error

	// Clear removes all entries. Called on sign-out.
	Clear(ctx context.Context) error
}
