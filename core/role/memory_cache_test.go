package role_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanKosgey/cow-connect-app-sub007/core/role"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		t.Parallel()

		cache := role.NewMemoryCache()
		_, ok, err := cache.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		now := time.Unix(1_700_000_000, 0)
		cache := role.NewMemoryCache(role.WithMemoryCacheClock(func() time.Time { return now }))
		id := uuid.New()

		require.NoError(t, cache.Set(ctx, id, role.RoleFarmer))

		entry, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, role.RoleFarmer, entry.Role)
		assert.Equal(t, now, entry.CachedAt)
	})

	t.Run("set overwrites", func(t *testing.T) {
		t.Parallel()

		cache := role.NewMemoryCache()
		id := uuid.New()

		require.NoError(t, cache.Set(ctx, id, role.RoleFarmer))
		require.NoError(t, cache.Set(ctx, id, role.RoleAdmin))

		entry, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, role.RoleAdmin, entry.Role)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		t.Parallel()

		cache := role.NewMemoryCache()
		id := uuid.New()
		require.NoError(t, cache.Set(ctx, id, role.RoleStaff))

		require.NoError(t, cache.Clear(ctx))

		_, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired entries stay readable", func(t *testing.T) {
		t.Parallel()

		past := time.Now().Add(-time.Hour)
		cache := role.NewMemoryCache(role.WithMemoryCacheClock(func() time.Time { return past }))
		id := uuid.New()
		require.NoError(t, cache.Set(ctx, id, role.RoleStaff))

		// The cache stores unconditionally; TTL judgment is the caller's.
		entry, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, entry.FreshAt(time.Now(), 5*time.Minute))
		assert.Equal(t, role.RoleStaff, entry.Role)
	})
}
