package role

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/DanKosgey/cow-connect-app-sub007/core/logger"
	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
	"github.com/DanKosgey/cow-connect-app-sub007/core/session"
	"github.com/DanKosgey/cow-connect-app-sub007/pkg/async"
	"github.com/DanKosgey/cow-connect-app-sub007/pkg/ratelimiter"
)

var componentAttr = logger.Component("role.resolver")

// Resolver runs the multi-tier role resolution chain described in the
// package documentation. Safe for concurrent use.
type Resolver struct {
	client   provider.Client
	sessions *session.Store
	querier  provider.RoleQuerier
	cache    Cache
	limiter  *ratelimiter.Window
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

// NewResolver creates a resolver over the given provider client and session
// store. By default it uses an in-memory cache, a 10-calls-per-10s lookup
// limiter, and no direct-query tier; see the options.
func NewResolver(client provider.Client, sessions *session.Store, opts ...Option) *Resolver {
	r := &Resolver{
		client:   client,
		sessions: sessions,
		cache:    NewMemoryCache(),
		cfg:      defaultConfig(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.limiter == nil {
		r.limiter = ratelimiter.NewWindow(r.cfg.MaxLookups, r.cfg.LookupWindow)
	}

	return r
}

// Cache returns the resolver's role cache so the owning facade can clear it
// on sign-out.
func (r *Resolver) Cache() Cache {
	return r.cache
}

// Resolve returns the role for userID, or "" when no role can be
// determined. It never returns an error: every failure degrades to cached
// data or the empty string, which callers treat as "no role".
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) string {
	entry, cached, err := r.cache.Get(ctx, userID)
	if err != nil {
		r.log.DebugContext(ctx, "role cache read failed", logger.UserID(userID), logger.Error(err))
		cached = false
	}
	if cached && entry.FreshAt(r.now(), r.cfg.CacheTTL) {
		return entry.Role
	}

	if !r.limiter.Allow() {
		// Degrade, never block: a stale role beats an empty one here.
		r.log.DebugContext(ctx, "role lookup rate limited",
			logger.UserID(userID), logger.Error(ratelimiter.ErrRateLimitExceeded))
		if cached {
			return entry.Role
		}
		return ""
	}

	resolved, rpcErr := r.remoteRole(ctx, userID)
	if resolved != "" {
		r.store(ctx, userID, resolved)
		return resolved
	}

	resolved, queryErr := r.directRole(ctx, userID)
	if resolved != "" {
		r.store(ctx, userID, resolved)
		return resolved
	}

	// One last direct attempt when either path died with a hard error, as
	// opposed to cleanly finding nothing.
	if rpcErr != nil || queryErr != nil {
		if resolved, err := r.directRole(ctx, userID); err == nil && resolved != "" {
			r.store(ctx, userID, resolved)
			return resolved
		}
	}

	if cached {
		r.log.DebugContext(ctx, "all role lookup tiers failed, serving stale cache",
			logger.UserID(userID))
		return entry.Role
	}
	return ""
}

// remoteRole performs the rate-limited RPC lookup tier. A clean miss (no
// valid session, role not assigned, unrecognized result shape) returns
// ("", nil); a hard failure returns the error so Resolve can trigger the
// emergency tier.
func (r *Resolver) remoteRole(ctx context.Context, userID uuid.UUID) (string, error) {
	// Without a valid session the call is guaranteed to be rejected, so
	// fail fast instead of burning retries.
	if !r.sessions.Session().ValidAt(r.now(), r.cfg.SessionBuffer) {
		return "", nil
	}

	var data any
	op := func() error {
		var err error
		data, err = async.WithTimeout(ctx, r.cfg.RPCTimeout, func(ctx context.Context) (any, error) {
			return r.client.RPC(ctx, r.cfg.RPCName, map[string]any{"user_id": userID.String()})
		})
		return err
	}

	if err := backoff.Retry(op, r.newBackOff(ctx, r.cfg.RPCRetries)); err != nil {
		r.log.DebugContext(ctx, "remote role lookup failed",
			logger.UserID(userID), logger.Error(err))
		return "", errors.Join(provider.ErrProvider, err)
	}

	resolved, ok := ExtractRole(data)
	if !ok {
		return "", nil
	}
	return resolved, nil
}

// directRole performs the direct-query fallback tier.
func (r *Resolver) directRole(ctx context.Context, userID uuid.UUID) (string, error) {
	if r.querier == nil {
		return "", nil
	}

	resolved, err := r.querier.ActiveRole(ctx, userID)
	if err != nil {
		if errors.Is(err, provider.ErrRoleNotFound) {
			return "", nil
		}
		r.log.DebugContext(ctx, "direct role query failed",
			logger.UserID(userID), logger.Error(err))
		return "", err
	}
	return resolved, nil
}

func (r *Resolver) store(ctx context.Context, userID uuid.UUID, resolved string) {
	if err := r.cache.Set(ctx, userID, resolved); err != nil {
		r.log.DebugContext(ctx, "role cache write failed",
			logger.UserID(userID), logger.Error(err))
	}
}

func (r *Resolver) newBackOff(ctx context.Context, retries int) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.cfg.BackoffBase
	bo.Multiplier = 2
	bo.MaxElapsedTime = 0
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries)), ctx)
}
