package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"github.com/DanKosgey/cow-connect-app-sub007/core/logger"
	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
	"github.com/DanKosgey/cow-connect-app-sub007/core/session"
	"github.com/DanKosgey/cow-connect-app-sub007/pkg/async"
)

var componentAttr = logger.Component("refresh.coordinator")

// Coordinator serializes session refreshes against the provider.
// Safe for concurrent use.
type Coordinator struct {
	client provider.Client
	store  *session.Store
	cfg    Config
	log    *slog.Logger

	mu         sync.Mutex
	refreshing bool
	safety     *time.Timer
	closed     bool

	group singleflight.Group

	// Observability metrics
	refreshes    atomic.Int64
	failures     atomic.Int64
	safetyResets atomic.Int64
}

// Stats provides observability metrics for monitoring and debugging.
// SafetyResets counting up means provider calls are hanging past their
// timeout and deserve operator attention.
type Stats struct {
	Refreshes    int64 // Successful provider refreshes
	Failures     int64 // Failed or timed-out refresh attempts
	SafetyResets int64 // Times the defensive timer cleared a stuck flag
}

// NewCoordinator creates a coordinator that writes refreshed sessions into
// the given store.
func NewCoordinator(client provider.Client, store *session.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		client: client,
		store:  store,
		cfg:    defaultConfig(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Refresh is the refresh primitive: it debounces, then performs a single
// provider refresh. When another refresh is already in flight once the
// debounce elapses, it returns ErrInProgress without touching the provider.
func (c *Coordinator) Refresh(ctx context.Context) (*provider.Session, error) {
	if err := c.debounce(ctx); err != nil {
		return nil, err
	}
	return c.refreshOnce(ctx)
}

// RefreshSession is the retrying variant: up to MaxAttempts tries of
// Refresh with exponential backoff and jitter. Concurrent callers share one
// in-flight attempt chain and all receive its result.
func (c *Coordinator) RefreshSession(ctx context.Context) (*provider.Session, error) {
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		var sess *provider.Session
		op := func() error {
			s, err := c.Refresh(ctx)
			if err != nil {
				if errors.Is(err, ErrClosed) {
					return backoff.Permanent(err)
				}
				return err
			}
			sess = s
			return nil
		}

		if err := backoff.Retry(op, c.newBackOff(ctx)); err != nil {
			return nil, err
		}
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*provider.Session), nil
}

// Stats returns a snapshot of the refresh counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		Refreshes:    c.refreshes.Load(),
		Failures:     c.failures.Load(),
		SafetyResets: c.safetyResets.Load(),
	}
}

// Close tears the coordinator down: the safety timer is cancelled and all
// subsequent refreshes fail with ErrClosed. Idempotent.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.refreshing = false
	if c.safety != nil {
		c.safety.Stop()
		c.safety = nil
	}
}

// debounce waits out the burst window so rapid successive requests collapse
// into one provider call.
func (c *Coordinator) debounce(ctx context.Context) error {
	if c.cfg.Debounce <= 0 {
		return nil
	}

	timer := time.NewTimer(c.cfg.Debounce)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) refreshOnce(ctx context.Context) (*provider.Session, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.refreshing {
		c.mu.Unlock()
		return nil, ErrInProgress
	}
	c.refreshing = true
	// Last-resort unlock for a provider call that never settles. The
	// normal completion path below cancels it.
	c.safety = time.AfterFunc(c.cfg.Timeout+c.cfg.SafetyMargin, c.safetyReset)
	c.mu.Unlock()

	started := time.Now()
	sess, err := async.WithTimeout(ctx, c.cfg.Timeout, c.client.RefreshSession)
	if err == nil && sess == nil {
		err = ErrEmptyResult
	}

	c.clearInFlight()

	if err != nil {
		c.failures.Add(1)
		c.log.DebugContext(ctx, "session refresh failed",
			logger.Error(err), logger.Duration(time.Since(started)))
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	c.store.SetSession(sess)
	c.refreshes.Add(1)
	return sess, nil
}

// clearInFlight resets the in-flight flag and cancels the safety timer.
// Idempotent: the safety timer may already have cleared the flag by the
// time a slow provider call finally settles.
func (c *Coordinator) clearInFlight() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshing = false
	if c.safety != nil {
		c.safety.Stop()
		c.safety = nil
	}
}

// safetyReset runs when the defensive timer fires. A still-set flag here
// means the provider call never settled within timeout plus margin; that is
// an anomaly worth surfacing, not a normal completion path.
func (c *Coordinator) safetyReset() {
	c.mu.Lock()
	stuck := c.refreshing
	c.refreshing = false
	c.safety = nil
	c.mu.Unlock()

	if stuck {
		c.safetyResets.Add(1)
		c.log.Warn("refresh safety timer fired, force-clearing stuck in-flight flag",
			logger.Duration(c.cfg.Timeout+c.cfg.SafetyMargin))
	}
}

func (c *Coordinator) newBackOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.BackoffBase
	bo.Multiplier = 2
	bo.MaxElapsedTime = 0

	retries := c.cfg.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries)), ctx)
}
