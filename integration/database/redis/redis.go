package redis

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	ConnectionURL string        `env:"REDIS_URL,required"`
	RetryAttempts uint          `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
}

// Connect creates a Redis client from the configured URL and verifies
// connectivity with retried pings.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	client := redis.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.RetryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(cfg.RetryAttempts)), ctx)

	ping := func() error { return client.Ping(ctx).Err() }
	if err := backoff.Retry(ping, policy); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}
	return client, nil
}

// Healthcheck returns a probe function that verifies Redis connectivity.
func Healthcheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
