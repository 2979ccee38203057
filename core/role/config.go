package role

import (
	"log/slog"
	"time"

	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
	"github.com/DanKosgey/cow-connect-app-sub007/pkg/ratelimiter"
)

// Config holds resolver tuning knobs. The zero value is unusable; use
// defaultConfig or core/config to populate it.
type Config struct {
	// CacheTTL is how long a cached role is trusted without revalidation.
	CacheTTL time.Duration `env:"ROLE_CACHE_TTL" envDefault:"5m"`

	// RPCName is the remote procedure invoked for role lookups.
	RPCName string `env:"ROLE_RPC_NAME" envDefault:"get_user_role"`

	// RPCTimeout bounds each remote lookup attempt.
	RPCTimeout time.Duration `env:"ROLE_RPC_TIMEOUT" envDefault:"5s"`

	// RPCRetries is how many times a failed remote lookup is retried.
	RPCRetries int `env:"ROLE_RPC_RETRIES" envDefault:"2"`

	// BackoffBase is the initial retry delay; it doubles per attempt with
	// jitter applied.
	BackoffBase time.Duration `env:"ROLE_BACKOFF_BASE" envDefault:"200ms"`

	// SessionBuffer mirrors the session expiry buffer: remote lookups
	// fail fast unless the cached session is valid past this margin.
	SessionBuffer time.Duration `env:"ROLE_SESSION_BUFFER" envDefault:"2m"`

	// MaxLookups / LookupWindow shape the sliding-window limiter guarding
	// the remote lookup path.
	MaxLookups   int           `env:"ROLE_LOOKUP_MAX_CALLS" envDefault:"10"`
	LookupWindow time.Duration `env:"ROLE_LOOKUP_WINDOW" envDefault:"10s"`
}

func defaultConfig() Config {
	return Config{
		CacheTTL:      5 * time.Minute,
		RPCName:       "get_user_role",
		RPCTimeout:    5 * time.Second,
		RPCRetries:    2,
		BackoffBase:   200 * time.Millisecond,
		SessionBuffer: 2 * time.Minute,
		MaxLookups:    10,
		LookupWindow:  10 * time.Second,
	}
}

// Option is a functional option for configuring the resolver.
type Option func(*Resolver)

// WithConfig replaces the entire resolver configuration.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) {
		r.cfg = cfg
	}
}

// WithCacheTTL sets how long cached roles are trusted.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.cfg.CacheTTL = ttl
	}
}

// WithRPCTimeout bounds each remote lookup attempt.
func WithRPCTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.cfg.RPCTimeout = d
	}
}

// WithCache replaces the default in-memory cache, e.g. with the
// Redis-backed implementation.
func WithCache(cache Cache) Option {
	return func(r *Resolver) {
		if cache != nil {
			r.cache = cache
		}
	}
}

// WithQuerier enables the direct-query fallback tier.
func WithQuerier(q provider.RoleQuerier) Option {
	return func(r *Resolver) {
		r.querier = q
	}
}

// WithLimiter replaces the lookup rate limiter.
func WithLimiter(limiter *ratelimiter.Window) Option {
	return func(r *Resolver) {
		if limiter != nil {
			r.limiter = limiter
		}
	}
}

// WithLogger sets the logger for degraded-path decisions.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log.With(componentAttr)
		}
	}
}

// WithClock sets the time source, primarily for testing.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}
