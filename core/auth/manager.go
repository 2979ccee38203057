package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DanKosgey/cow-connect-app-sub007/core/logger"
	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
	"github.com/DanKosgey/cow-connect-app-sub007/core/refresh"
	"github.com/DanKosgey/cow-connect-app-sub007/core/role"
	"github.com/DanKosgey/cow-connect-app-sub007/core/session"
	"github.com/DanKosgey/cow-connect-app-sub007/pkg/async"
)

// Manager is the session and authorization facade. Construct once with New,
// share it, and tear it down with Close. Safe for concurrent use.
type Manager struct {
	client      provider.Client
	sessions    *session.Store
	resolver    *role.Resolver
	refresher   *refresh.Coordinator
	roleCache   role.Cache
	roleQuerier provider.RoleQuerier
	roleWriter  provider.RoleWriter
	roleOpts    []role.Option
	refreshOpts []refresh.Option

	cfg    Config
	log    *slog.Logger
	now    func() time.Time
	closed atomic.Bool
}

// New composes a manager over the given provider client. The session store,
// role resolver, and refresh coordinator are built internally; options
// inject alternative caches, the direct-query tier, and component tuning.
func New(client provider.Client, opts ...Option) (*Manager, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	m := &Manager{
		client:   client,
		sessions: session.NewStore(),
		cfg:      defaultConfig(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	roleOpts := []role.Option{role.WithLogger(m.log), role.WithClock(m.now)}
	if m.roleCache != nil {
		roleOpts = append(roleOpts, role.WithCache(m.roleCache))
	}
	if m.roleQuerier != nil {
		roleOpts = append(roleOpts, role.WithQuerier(m.roleQuerier))
	}
	roleOpts = append(roleOpts, m.roleOpts...)
	m.resolver = role.NewResolver(client, m.sessions, roleOpts...)
	m.roleCache = m.resolver.Cache()

	refreshOpts := append([]refresh.Option{refresh.WithLogger(m.log)}, m.refreshOpts...)
	m.refresher = refresh.NewCoordinator(client, m.sessions, refreshOpts...)

	return m, nil
}

// CurrentUser returns the authenticated user, or nil when there is none.
//
// With validate set, the session is re-validated against the provider at
// most once per ValidationInterval; an invalid session clears all local
// state and yields nil. Otherwise the cached user is returned when present,
// falling back to one provider fetch.
func (m *Manager) CurrentUser(ctx context.Context, validate bool) (*provider.User, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	if validate && m.now().Sub(m.sessions.LastValidation()) >= m.cfg.ValidationInterval {
		valid, err := m.ValidateSession(ctx)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, nil
		}
	}

	if user := m.sessions.User(); user != nil {
		return user, nil
	}

	user, err := m.client.GetUser(ctx)
	if err != nil {
		return nil, errors.Join(provider.ErrProvider, err)
	}
	if user != nil {
		m.sessions.SetUser(user)
	}
	return user, nil
}

// ValidateSession fetches the current session from the provider and reports
// whether it is valid past the expiry buffer. An invalid session clears all
// local state so stale identity can never be served afterwards.
func (m *Manager) ValidateSession(ctx context.Context) (bool, error) {
	sess, err := m.client.GetSession(ctx)
	if err != nil {
		return false, errors.Join(provider.ErrProvider, err)
	}

	m.sessions.MarkValidated(m.now())

	if !sess.ValidAt(m.now(), m.cfg.ExpiryBuffer) {
		m.clearLocal(ctx)
		m.sessions.MarkValidated(m.now())
		return false, nil
	}

	m.sessions.SetSession(sess)
	return true, nil
}

// CurrentSession returns the current session, serving a locally cached
// valid one without a provider round trip.
func (m *Manager) CurrentSession(ctx context.Context) (*provider.Session, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	if sess := m.sessions.Session(); sess.ValidAt(m.now(), m.cfg.ExpiryBuffer) {
		return sess, nil
	}

	sess, err := m.client.GetSession(ctx)
	if err != nil {
		return nil, errors.Join(provider.ErrProvider, err)
	}
	if sess != nil {
		m.sessions.SetSession(sess)
	}
	return sess, nil
}

// SignInWithEmail authenticates against the provider and caches the result.
// Any previously cached roles belong to the old identity and are dropped.
func (m *Manager) SignInWithEmail(ctx context.Context, email, password string) (*provider.AuthResult, error) {
	res, err := m.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	m.clearRoles(ctx)
	m.sessions.SetCurrent(res.User, res.Session)
	m.sessions.MarkValidated(m.now())
	return res, nil
}

// SignUp registers a new account. When a role writer is configured, the
// role assignment and the role-specific profile are persisted as two
// best-effort background calls: their failures are logged, never fatal to
// the sign-up result. An empty roleName falls back to DefaultSignUpRole.
func (m *Manager) SignUp(ctx context.Context, email, password string, metadata map[string]any, roleName string) (*provider.AuthResult, error) {
	if roleName == "" {
		roleName = m.cfg.DefaultSignUpRole
	}

	res, err := m.client.SignUp(ctx, email, password, metadata)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	if res.User != nil && m.roleWriter != nil {
		userID := res.User.ID
		m.bestEffort(ctx, "assign role", func(ctx context.Context) error {
			return m.roleWriter.AssignRole(ctx, userID, roleName)
		})
		m.bestEffort(ctx, "create profile", func(ctx context.Context) error {
			return m.roleWriter.CreateProfile(ctx, userID, roleName, email)
		})
	}

	if res.Session != nil {
		m.sessions.SetCurrent(res.User, res.Session)
		m.sessions.MarkValidated(m.now())
	}
	return res, nil
}

// SignOut invalidates the provider session and wipes all local state. Local
// state is cleared even when the provider call fails: an attempted sign-out
// must never leave cached identity behind.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.client.SignOut(ctx)

	m.sessions.Clear()
	m.clearRoles(ctx)

	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// ResetPassword asks the provider to send a password reset email.
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	if err := m.client.ResetPasswordForEmail(ctx, email, m.cfg.ResetRedirectTo); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// UpdatePassword changes the current user's password.
func (m *Manager) UpdatePassword(ctx context.Context, newPassword string) error {
	if err := m.client.UpdatePassword(ctx, newPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// RefreshSession refreshes the session with retries; concurrent callers
// share one attempt chain.
func (m *Manager) RefreshSession(ctx context.Context) (*provider.Session, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	return m.refresher.RefreshSession(ctx)
}

// UserRole resolves the current user's role, or "" when unauthenticated or
// no role can be determined. It never returns an error; "" means
// unauthorized.
func (m *Manager) UserRole(ctx context.Context) string {
	user, err := m.CurrentUser(ctx, true)
	if err != nil || user == nil {
		return ""
	}
	return m.resolver.Resolve(ctx, user.ID)
}

// HasRole reports whether the current user holds exactly the required role.
func (m *Manager) HasRole(ctx context.Context, required string) bool {
	resolved := m.UserRole(ctx)
	return resolved != "" && resolved == required
}

// RoleHint returns the non-authoritative email-heuristic role guess. It is
// a suggestion for manual confirmation only and never touches cached or
// persisted authorization state.
func (m *Manager) RoleHint(email string) (string, bool) {
	return role.Hint(email)
}

// RefreshStats exposes the refresh coordinator's counters for monitoring.
func (m *Manager) RefreshStats() refresh.Stats {
	return m.refresher.Stats()
}

// Close tears the manager down: the refresh coordinator stops, and all
// cached state is cleared. Idempotent.
func (m *Manager) Close() {
	if m.closed.Swap(true) {
		return
	}
	m.refresher.Close()
	m.sessions.Clear()
	m.clearRoles(context.Background())
}

func (m *Manager) clearLocal(ctx context.Context) {
	m.sessions.Clear()
	m.clearRoles(ctx)
}

func (m *Manager) clearRoles(ctx context.Context) {
	if err := m.roleCache.Clear(ctx); err != nil {
		m.log.WarnContext(ctx, "role cache clear failed",
			logger.Component("auth.manager"), logger.Error(err))
	}
}

// bestEffort runs fn in the background, detached from the caller's
// cancellation, and logs a warning when it fails.
func (m *Manager) bestEffort(ctx context.Context, op string, fn func(context.Context) error) {
	detached := context.WithoutCancel(ctx)
	future := async.Exec(detached, op, func(ctx context.Context, _ string) error {
		return fn(ctx)
	})

	go func() {
		if err := future.Await(); err != nil {
			m.log.WarnContext(detached, "best-effort side call failed",
				logger.Component("auth.manager"),
				slog.String("op", op),
				logger.Error(err))
		}
	}()
}
