package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNotStructPointer is returned when Load receives anything other
	// than a non-nil pointer to a struct.
	ErrNotStructPointer = errors.New("config target must be a non-nil struct pointer")
	// ErrParseFailed wraps environment parsing failures.
	ErrParseFailed = errors.New("failed to parse environment variables")
)

var (
	mu         sync.Mutex
	cache      = make(map[reflect.Type]any)
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg, which must be a non-nil
// pointer to a struct. The first call for a given type parses the
// environment; subsequent calls return the cached value, so all consumers
// of a config type see identical data.
func Load(cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	// Missing .env files are the normal production case, not an error.
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	mu.Lock()
	defer mu.Unlock()

	t := rv.Elem().Type()
	if cached, ok := cache[t]; ok {
		rv.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseFailed, err)
	}

	cache[t] = rv.Elem().Interface()
	return nil
}

// MustLoad is Load that panics on failure, useful during startup.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
