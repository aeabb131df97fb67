package config

import (
	"fmt"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in the ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Store driver names accepted in STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	ServerAddress string `conf:"default::8080,env:SERVER_ADDRESS"`

	// Store
	MongoURI      string `conf:"default:mongodb://localhost:27017,env:MONGO_URI,noprint"`
	MongoDatabase string `conf:"default:stockroom,env:MONGO_DB"`
	StoreDriver   string `conf:"default:mongo,enum:mongo|memory,env:STORE_DRIVER"`
	// DataDir holds the memory driver's JSON snapshot; empty disables it.
	DataDir string `conf:"env:DATA_DIR"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// CORS — comma-separated list of allowed origins; * allows all (dev only).
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	RateLimitPerMin int `conf:"default:100,env:RATE_LIMIT_PER_MIN"`

	// AuthJWTSecret enables bearer-token verification on mutating routes
	// when set. Tokens are issued by an external identity service; this
	// server only verifies them.
	AuthJWTSecret string `conf:"env:AUTH_JWT_SECRET,noprint"`

	// Observability
	ServiceName    string `conf:"default:stockroom,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ValidateForProduction enforces settings that must not reach production.
// No-ops for other environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}
	if cfg.StoreDriver == DriverMemory {
		return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
	}
	if cfg.CORSAllowedOrigins == "*" {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must not be * in production")
	}
	return nil
}
