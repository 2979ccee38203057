package auth

import (
	"log/slog"
	"time"

	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
	"github.com/DanKosgey/cow-connect-app-sub007/core/refresh"
	"github.com/DanKosgey/cow-connect-app-sub007/core/role"
)

// Config holds manager-level tuning knobs. Component-level knobs live in
// the refresh and role packages and are forwarded via options.
type Config struct {
	// ExpiryBuffer shifts the session validity cutoff earlier so tokens
	// are refreshed before they actually lapse.
	ExpiryBuffer time.Duration `env:"AUTH_EXPIRY_BUFFER" envDefault:"2m"`

	// ValidationInterval throttles provider round trips from CurrentUser:
	// a session validated this recently is trusted without re-checking.
	ValidationInterval time.Duration `env:"AUTH_VALIDATION_INTERVAL" envDefault:"30s"`

	// ResetRedirectTo is passed to the provider on password reset emails.
	ResetRedirectTo string `env:"AUTH_RESET_REDIRECT_URL"`

	// DefaultSignUpRole is assigned when SignUp is called without an
	// explicit role.
	DefaultSignUpRole string `env:"AUTH_DEFAULT_SIGNUP_ROLE" envDefault:"farmer"`
}

func defaultConfig() Config {
	return Config{
		ExpiryBuffer:       2 * time.Minute,
		ValidationInterval: 30 * time.Second,
		DefaultSignUpRole:  role.RoleFarmer,
	}
}

// Option is a functional option for configuring the manager.
type Option func(*Manager)

// WithConfig replaces the manager configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// WithExpiryBuffer sets the session validity margin.
func WithExpiryBuffer(d time.Duration) Option {
	return func(m *Manager) {
		m.cfg.ExpiryBuffer = d
	}
}

// WithValidationInterval sets the validation throttle.
func WithValidationInterval(d time.Duration) Option {
	return func(m *Manager) {
		m.cfg.ValidationInterval = d
	}
}

// WithLogger sets the logger shared with the composed components.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock sets the time source, primarily for testing.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithRoleCache replaces the resolver's in-memory role cache, e.g. with
// the Redis-backed implementation.
func WithRoleCache(cache role.Cache) Option {
	return func(m *Manager) {
		m.roleCache = cache
	}
}

// WithRoleQuerier enables the resolver's direct-query fallback tier.
func WithRoleQuerier(q provider.RoleQuerier) Option {
	return func(m *Manager) {
		m.roleQuerier = q
	}
}

// WithRoleWriter enables the best-effort sign-up side effects.
func WithRoleWriter(w provider.RoleWriter) Option {
	return func(m *Manager) {
		m.roleWriter = w
	}
}

// WithRoleOptions forwards extra options to the role resolver.
func WithRoleOptions(opts ...role.Option) Option {
	return func(m *Manager) {
		m.roleOpts = append(m.roleOpts, opts...)
	}
}

// WithRefreshOptions forwards extra options to the refresh coordinator.
func WithRefreshOptions(opts ...refresh.Option) Option {
	return func(m *Manager) {
		m.refreshOpts = append(m.refreshOpts, opts...)
	}
}
