package config_test

import (
	"testing"

	"github.com/stockroom/backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerAddress != ":8080" {
		t.Errorf("ServerAddress = %q", cfg.ServerAddress)
	}
	if cfg.StoreDriver != config.DriverMongo {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.MongoDatabase != "stockroom" {
		t.Errorf("MongoDatabase = %q", cfg.MongoDatabase)
	}
	if cfg.Environment != config.EnvDevelopment {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.RateLimitPerMin != 100 {
		t.Errorf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
	if cfg.AuthJWTSecret != "" {
		t.Errorf("AuthJWTSecret should default to empty")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SERVER_ADDRESS", ":9999")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreDriver != config.DriverMemory {
		t.Errorf("StoreDriver = %q, want memory", cfg.StoreDriver)
	}
	if cfg.ServerAddress != ":9999" {
		t.Errorf("ServerAddress = %q, want :9999", cfg.ServerAddress)
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"development passes regardless", func(c *config.Config) {
			c.Environment = config.EnvDevelopment
			c.StoreDriver = config.DriverMemory
		}, false},
		{"production with memory store fails", func(c *config.Config) {
			c.Environment = config.EnvProduction
			c.StoreDriver = config.DriverMemory
			c.CORSAllowedOrigins = "https://app.example.com"
		}, true},
		{"production with wildcard cors fails", func(c *config.Config) {
			c.Environment = config.EnvProduction
			c.StoreDriver = config.DriverMongo
			c.CORSAllowedOrigins = "*"
		}, true},
		{"production with safe settings passes", func(c *config.Config) {
			c.Environment = config.EnvProduction
			c.StoreDriver = config.DriverMongo
			c.CORSAllowedOrigins = "https://app.example.com"
		}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tc.mutate(cfg)
			err = config.ValidateForProduction(cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateForProduction = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
