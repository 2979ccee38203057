// Package pg provides PostgreSQL connection management and the role
// persistence layer backing authorization lookups.
//
// It wraps the pgx driver with connection pool configuration, retry logic
// for transient startup failures, and a health check suitable for readiness
// probes. On top of the pool it exposes RoleStore, which reads and writes
// user role assignments and role-specific profiles.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     uint          `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Usage Example
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("Failed to connect to PostgreSQL:", err)
//	}
//	defer pool.Close()
//
//	store := pg.NewRoleStore(pool)
//	role, err := store.ActiveRole(ctx, userID)
//
// # Role Storage
//
// RoleStore implements both provider.RoleQuerier and provider.RoleWriter.
// Reads prefer the active_user_roles view and fall back to the raw
// user_roles table when the view is missing, so lookups keep working across
// schema rollouts. A user with no active role yields
// provider.ErrRoleNotFound, which callers treat as a clean miss rather than
// a failure.
//
// # Health Checking
//
// Healthcheck returns a function suitable for readiness and liveness
// probes:
//
//	healthCheck := pg.Healthcheck(pool)
//	if err := healthCheck(ctx); err != nil {
//		// database unreachable
//	}
//
// # Transaction Management
//
// WithTx attaches a pgx.Tx to a context and TxFromContext retrieves it, so
// RoleStore writes can participate in a caller-managed transaction:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx) // Safe even after commit
//
//	ctx = pg.WithTx(ctx, tx)
//	if err := store.AssignRole(ctx, userID, "farmer"); err != nil {
//		return err
//	}
//	if err := store.CreateProfile(ctx, userID, "farmer", email); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
package pg
