// Package config provides type-safe environment variable loading with
// caching using Go generics-free reflection. Each configuration type is
// loaded once and cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct
// fields.
//
// Basic usage:
//
//	import "github.com/DanKosgey/cow-connect-app-sub007/core/config"
//
//	type AuthConfig struct {
//		ExpiryBuffer       time.Duration `env:"AUTH_EXPIRY_BUFFER" envDefault:"2m"`
//		ValidationInterval time.Duration `env:"AUTH_VALIDATION_INTERVAL" envDefault:"30s"`
//	}
//
//	func main() {
//		var cfg AuthConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime;
// later Load calls for the same type return the cached value. Different
// types are cached independently.
package config
