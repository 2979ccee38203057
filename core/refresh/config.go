package refresh

import (
	"log/slog"
	"time"
)

// Config holds refresh coordinator tuning knobs.
type Config struct {
	// Debounce is how long a request waits for the burst to settle before
	// the provider call starts. 0 disables debouncing.
	Debounce time.Duration `env:"REFRESH_DEBOUNCE" envDefault:"1s"`

	// Timeout bounds the provider refresh call.
	Timeout time.Duration `env:"REFRESH_TIMEOUT" envDefault:"10s"`

	// SafetyMargin is added to Timeout for the defensive timer that
	// force-clears a stuck in-flight flag.
	SafetyMargin time.Duration `env:"REFRESH_SAFETY_MARGIN" envDefault:"5s"`

	// MaxAttempts caps the retrying variant's attempt chain.
	MaxAttempts int `env:"REFRESH_MAX_ATTEMPTS" envDefault:"3"`

	// BackoffBase is the initial retry delay; it doubles per attempt with
	// jitter applied.
	BackoffBase time.Duration `env:"REFRESH_BACKOFF_BASE" envDefault:"500ms"`
}

func defaultConfig() Config {
	return Config{
		Debounce:     time.Second,
		Timeout:      10 * time.Second,
		SafetyMargin: 5 * time.Second,
		MaxAttempts:  3,
		BackoffBase:  500 * time.Millisecond,
	}
}

// Option is a functional option for configuring the coordinator.
type Option func(*Coordinator)

// WithConfig replaces the entire coordinator configuration.
func WithConfig(cfg Config) Option {
	return func(c *Coordinator) {
		c.cfg = cfg
	}
}

// WithDebounce sets the debounce window. 0 disables debouncing.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		c.cfg.Debounce = d
	}
}

// WithTimeout bounds the provider refresh call.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.cfg.Timeout = d
	}
}

// WithSafetyMargin sets the extra slack before the defensive timer fires.
func WithSafetyMargin(d time.Duration) Option {
	return func(c *Coordinator) {
		c.cfg.SafetyMargin = d
	}
}

// WithMaxAttempts caps RefreshSession's retry chain.
func WithMaxAttempts(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.cfg.MaxAttempts = n
		}
	}
}

// WithBackoffBase sets the initial retry delay.
func WithBackoffBase(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.cfg.BackoffBase = d
		}
	}
}

// WithLogger sets the logger for anomaly reporting.
func WithLogger(log *slog.Logger) Option {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log.With(componentAttr)
		}
	}
}
