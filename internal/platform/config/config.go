package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate cache backend: "pgsql" or "redis".
	RateCacheBackend string
	RedisAddr        string
	RedisPassword    string

	// Remote exchange-rate provider.
	RateProviderURL     string
	RateProviderTimeout time.Duration

	// Staleness policy for cached rates.
	RateCacheTTL time.Duration

	// Requests-per-period limit in ulule/limiter format, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env
// file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_CACHE_BACKEND", "pgsql")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("RATE_PROVIDER_URL", "")
	viper.SetDefault("RATE_PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		RateCacheBackend: viper.GetString("RATE_CACHE_BACKEND"),
		RedisAddr:        viper.GetString("REDIS_ADDR"),
		RedisPassword:    viper.GetString("REDIS_PASSWORD"),
		RateProviderURL:  viper.GetString("RATE_PROVIDER_URL"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.RateProviderURL == "" {
		log.Println("Warning: RATE_PROVIDER_URL not set. Rate fetches will fail and fall back to cached or identity rates.")
	}

	providerTimeoutStr := viper.GetString("RATE_PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil {
		providerTimeout = 10 * time.Second
		if providerTimeoutStr != "" {
			log.Printf("Warning: Invalid value for RATE_PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", providerTimeoutStr, providerTimeout)
		}
	}
	cfg.RateProviderTimeout = providerTimeout

	ttlStr := viper.GetString("RATE_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = time.Hour
		if ttlStr != "" {
			log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
		}
	}
	cfg.RateCacheTTL = ttl

	if cfg.RateCacheBackend != "pgsql" && cfg.RateCacheBackend != "redis" {
		log.Printf("Warning: Unknown RATE_CACHE_BACKEND ('%s'). Defaulting to pgsql.\n", cfg.RateCacheBackend)
		cfg.RateCacheBackend = "pgsql"
	}

	return cfg, nil
}
