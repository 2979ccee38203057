package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/DanKosgey/cow-connect-app-sub007/core/role"
)

const (
	defaultKeyPrefix = "auth:role:"

	// Hard expiry for abandoned entries. Deliberately much longer than any
	// freshness TTL so stale roles stay readable for degraded fallbacks.
	defaultHardTTL = 24 * time.Hour
)

// roleRecord is the stored JSON shape.
type roleRecord struct {
	Role     string    `json:"role"`
	CachedAt time.Time `json:"cached_at"`
}

// RoleCache is a Redis-backed role.Cache shared across instances.
type RoleCache struct {
	client    *redis.Client
	keyPrefix string
	hardTTL   time.Duration
	now       func() time.Time
}

// RoleCacheOption customizes a RoleCache.
type RoleCacheOption func(*RoleCache)

// WithKeyPrefix overrides the key namespace, useful when several
// environments share one Redis.
func WithKeyPrefix(prefix string) RoleCacheOption {
	return func(c *RoleCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithHardTTL overrides the garbage-collection expiry on stored entries.
func WithHardTTL(ttl time.Duration) RoleCacheOption {
	return func(c *RoleCache) {
		if ttl > 0 {
			c.hardTTL = ttl
		}
	}
}

// WithRoleCacheClock injects a time source for tests.
func WithRoleCacheClock(now func() time.Time) RoleCacheOption {
	return func(c *RoleCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewRoleCache creates a role cache over the given client.
func NewRoleCache(client *redis.Client, opts ...RoleCacheOption) *RoleCache {
	c := &RoleCache{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		hardTTL:   defaultHardTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached entry for userID. A missing key is a clean miss,
// not an error.
func (c *RoleCache) Get(ctx context.Context, userID uuid.UUID) (role.Entry, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return role.Entry{}, false, nil
		}
		return role.Entry{}, false, fmt.Errorf("get cached role: %w", err)
	}

	var rec roleRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return role.Entry{}, false, fmt.Errorf("decode cached role: %w", err)
	}
	return role.Entry{Role: rec.Role, CachedAt: rec.CachedAt}, true, nil
}

// Set stores the role for userID with the current timestamp.
func (c *RoleCache) Set(ctx context.Context, userID uuid.UUID, roleName string) error {
	raw, err := json.Marshal(roleRecord{Role: roleName, CachedAt: c.now()})
	if err != nil {
		return fmt.Errorf("encode cached role: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), raw, c.hardTTL).Err(); err != nil {
		return fmt.Errorf("set cached role: %w", err)
	}
	return nil
}

// Clear removes every entry under the cache's key prefix. Uses SCAN so a
// large keyspace never blocks Redis the way KEYS would.
func (c *RoleCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("clear cached roles: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cached roles: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("clear cached roles: %w", err)
		}
	}
	return nil
}

func (c *RoleCache) key(userID uuid.UUID) string {
	return c.keyPrefix + userID.String()
}

var _ role.Cache = (*RoleCache)(nil)
