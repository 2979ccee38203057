// Package redis provides Redis connection management and a distributed
// role cache so multiple instances share resolved roles.
//
// Connect parses a Redis URL, establishes a client, and verifies
// connectivity with retried pings. RoleCache implements the role.Cache
// boundary over that client, letting the role resolver share its cache
// tier across processes instead of keeping it per-instance.
//
// # Configuration
//
//	type Config struct {
//		ConnectionURL string        `env:"REDIS_URL,required"`
//		RetryAttempts uint          `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Usage Example
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("Failed to connect to Redis:", err)
//	}
//	defer client.Close()
//
//	cache := redis.NewRoleCache(client)
//	mgr, err := auth.New(providerClient, auth.WithRoleCache(cache))
//
// # Expiry Semantics
//
// Entries carry their own fetch timestamp; freshness against the resolver
// TTL is judged by the caller. The Redis key TTL is a much longer hard
// bound that only exists to garbage-collect abandoned entries, so stale
// roles remain readable for degraded-mode fallbacks.
package redis
