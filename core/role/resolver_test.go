package role_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
	"github.com/DanKosgey/cow-connect-app-sub007/core/role"
	"github.com/DanKosgey/cow-connect-app-sub007/core/session"
	"github.com/DanKosgey/cow-connect-app-sub007/pkg/ratelimiter"
)

// mockClient implements provider.Client for testing.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) SignInWithPassword(ctx context.Context, email, password string) (*provider.AuthResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*provider.AuthResult)
	return res, args.Error(1)
}

func (m *mockClient) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*provider.AuthResult, error) {
	args := m.Called(ctx, email, password, metadata)
	res, _ := args.Get(0).(*provider.AuthResult)
	return res, args.Error(1)
}

func (m *mockClient) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockClient) GetSession(ctx context.Context) (*provider.Session, error) {
	args := m.Called(ctx)
	sess, _ := args.Get(0).(*provider.Session)
	return sess, args.Error(1)
}

func (m *mockClient) GetUser(ctx context.Context) (*provider.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*provider.User)
	return user, args.Error(1)
}

func (m *mockClient) RefreshSession(ctx context.Context) (*provider.Session, error) {
	args := m.Called(ctx)
	sess, _ := args.Get(0).(*provider.Session)
	return sess, args.Error(1)
}

func (m *mockClient) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	return m.Called(ctx, email, redirectTo).Error(0)
}

func (m *mockClient) UpdatePassword(ctx context.Context, newPassword string) error {
	return m.Called(ctx, newPassword).Error(0)
}

func (m *mockClient) RPC(ctx context.Context, name string, rpcArgs map[string]any) (any, error) {
	args := m.Called(ctx, name, rpcArgs)
	return args.Get(0), args.Error(1)
}

// mockQuerier implements provider.RoleQuerier for testing.
type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) ActiveRole(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// Helper functions

func storeWithValidSession() *session.Store {
	store := session.NewStore()
	store.SetSession(&provider.Session{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	})
	return store
}

func staleCache(t *testing.T, userID uuid.UUID, cachedRole string) *role.MemoryCache {
	t.Helper()

	past := time.Now().Add(-time.Hour)
	cache := role.NewMemoryCache(role.WithMemoryCacheClock(func() time.Time { return past }))
	require.NoError(t, cache.Set(context.Background(), userID, cachedRole))
	return cache
}

// Tests

func TestResolverCacheTier(t *testing.T) {
	t.Parallel()

	t.Run("second lookup within TTL hits the cache, not the provider", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		userID := uuid.New()
		client.On("RPC", mock.Anything, "get_user_role", mock.Anything).Return("farmer", nil).Once()

		resolver := role.NewResolver(client, storeWithValidSession())

		assert.Equal(t, "farmer", resolver.Resolve(context.Background(), userID))
		assert.Equal(t, "farmer", resolver.Resolve(context.Background(), userID))

		client.AssertNumberOfCalls(t, "RPC", 1)
	})

	t.Run("expired cache entry triggers a fresh lookup", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		userID := uuid.New()
		client.On("RPC", mock.Anything, "get_user_role", mock.Anything).Return("staff", nil).Once()

		resolver := role.NewResolver(client, storeWithValidSession(),
			role.WithCache(staleCache(t, userID, "farmer")))

		assert.Equal(t, "staff", resolver.Resolve(context.Background(), userID))
		client.AssertExpectations(t)
	})
}

func TestResolverRateLimitTier(t *testing.T) {
	t.Parallel()

	t.Run("rate limited serves stale cache without a remote call", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		userID := uuid.New()

		limiter := ratelimiter.NewWindow(1, time.Minute)
		require.True(t, limiter.Allow()) // exhaust the window

		resolver := role.NewResolver(client, storeWithValidSession(),
			role.WithCache(staleCache(t, userID, "farmer")),
			role.WithLimiter(limiter))

		assert.Equal(t, "farmer", resolver.Resolve(context.Background(), userID))
		client.AssertNotCalled(t, "RPC", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rate limited without any cache returns no role", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		limiter := ratelimiter.NewWindow(1, time.Minute)
		require.True(t, limiter.Allow())

		resolver := role.NewResolver(client, storeWithValidSession(), role.WithLimiter(limiter))

		assert.Empty(t, resolver.Resolve(context.Background(), uuid.New()))
		client.AssertNotCalled(t, "RPC", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResolverRemoteTier(t *testing.T) {
	t.Parallel()

	t.Run("no valid session fails fast without a remote call", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		resolver := role.NewResolver(client, session.NewStore())

		assert.Empty(t, resolver.Resolve(context.Background(), uuid.New()))
		client.AssertNotCalled(t, "RPC", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unrecognized RPC shape falls through to the direct query", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		querier := &mockQuerier{}
		userID := uuid.New()

		client.On("RPC", mock.Anything, "get_user_role", mock.Anything).
			Return(map[string]any{"unexpected": true}, nil)
		querier.On("ActiveRole", mock.Anything, userID).Return("staff", nil).Once()

		resolver := role.NewResolver(client, storeWithValidSession(), role.WithQuerier(querier))

		assert.Equal(t, "staff", resolver.Resolve(context.Background(), userID))
		querier.AssertExpectations(t)
	})

	t.Run("RPC timing out on every attempt falls through to the direct query", func(t *testing.T) {
		t.Parallel()

		resolver, client, querier, userID := newTimeoutFixture(t)

		got := resolver.Resolve(context.Background(), userID)
		assert.Equal(t, "staff", got)

		// The cache reflects the direct-query result afterward.
		entry, ok, err := resolver.Cache().Get(context.Background(), userID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "staff", entry.Role)

		client.AssertExpectations(t)
		querier.AssertExpectations(t)
	})
}

// newTimeoutFixture builds a resolver whose RPC path sleeps past its timeout
// on every attempt while the direct-query path succeeds.
func newTimeoutFixture(t *testing.T) (*role.Resolver, *mockClient, *mockQuerier, uuid.UUID) {
	t.Helper()

	client := &mockClient{}
	querier := &mockQuerier{}
	userID := uuid.New()

	client.On("RPC", mock.Anything, "get_user_role", mock.Anything).
		Run(func(mock.Arguments) { time.Sleep(300 * time.Millisecond) }).
		Return(nil, nil)
	querier.On("ActiveRole", mock.Anything, userID).Return("staff", nil).Once()

	cfg := role.Config{
		CacheTTL:      5 * time.Minute,
		RPCName:       "get_user_role",
		RPCTimeout:    30 * time.Millisecond,
		RPCRetries:    2,
		BackoffBase:   time.Millisecond,
		SessionBuffer: 2 * time.Minute,
		MaxLookups:    10,
		LookupWindow:  10 * time.Second,
	}

	resolver := role.NewResolver(client, storeWithValidSession(),
		role.WithConfig(cfg),
		role.WithQuerier(querier))

	return resolver, client, querier, userID
}

func TestResolverEmergencyTier(t *testing.T) {
	t.Parallel()

	t.Run("hard failures trigger one extra direct attempt", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		querier := &mockQuerier{}
		userID := uuid.New()

		client.On("RPC", mock.Anything, "get_user_role", mock.Anything).
			Return(nil, errors.New("rpc exploded"))
		querier.On("ActiveRole", mock.Anything, userID).
			Return("", errors.New("replica down")).Once()
		querier.On("ActiveRole", mock.Anything, userID).
			Return("admin", nil).Once()

		resolver := role.NewResolver(client, storeWithValidSession(),
			role.WithQuerier(querier),
			role.WithConfig(fastConfig()))

		assert.Equal(t, "admin", resolver.Resolve(context.Background(), userID))
		querier.AssertExpectations(t)
	})

	t.Run("exhausting every tier returns no role", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		querier := &mockQuerier{}
		userID := uuid.New()

		client.On("RPC", mock.Anything, "get_user_role", mock.Anything).
			Return(nil, errors.New("rpc exploded"))
		querier.On("ActiveRole", mock.Anything, userID).
			Return("", provider.ErrRoleNotFound)

		resolver := role.NewResolver(client, storeWithValidSession(),
			role.WithQuerier(querier),
			role.WithConfig(fastConfig()))

		assert.Empty(t, resolver.Resolve(context.Background(), userID))
	})

	t.Run("stale cache is the last resort when every tier fails", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		userID := uuid.New()

		client.On("RPC", mock.Anything, "get_user_role", mock.Anything).
			Return(nil, errors.New("rpc exploded"))

		resolver := role.NewResolver(client, storeWithValidSession(),
			role.WithCache(staleCache(t, userID, "farmer")),
			role.WithConfig(fastConfig()))

		assert.Equal(t, "farmer", resolver.Resolve(context.Background(), userID))
	})
}

func fastConfig() role.Config {
	return role.Config{
		CacheTTL:      5 * time.Minute,
		RPCName:       "get_user_role",
		RPCTimeout:    100 * time.Millisecond,
		RPCRetries:    1,
		BackoffBase:   time.Millisecond,
		SessionBuffer: 2 * time.Minute,
		MaxLookups:    100,
		LookupWindow:  10 * time.Second,
	}
}
