// Package config loads the intake service configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	APIs      APIConfig       `yaml:"apis"`
	Redis     RedisConfig     `yaml:"redis"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// APIConfig holds upstream API endpoints.
type APIConfig struct {
	ApplicationStoreURL string        `yaml:"application_store_url"`
	OasysURL            string        `yaml:"oasys_url"`
	Timeout             time.Duration `yaml:"timeout"`
}

// RedisConfig configures the session store connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PostgresConfig configures the audit database. An empty DSN disables the
// Postgres store and the in-memory store is used instead.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// RateLimitConfig configures the per-user request limiter.
type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	Burst             int `yaml:"burst"`
}

// Load reads configuration from the given YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from path, falling back to defaults
// (plus environment overrides) when the file is missing.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
	}
	cfg.applyEnv()
	return cfg
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		APIs: APIConfig{
			ApplicationStoreURL: "http://localhost:9091",
			OasysURL:            "http://localhost:9092",
			Timeout:             30 * time.Second,
		},
		Redis:     RedisConfig{Addr: "localhost:6379"},
		RateLimit: RateLimitConfig{RequestsPerSecond: 20, Burst: 40},
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("config: server port is required")
	}
	if c.APIs.ApplicationStoreURL == "" {
		return fmt.Errorf("config: application store URL is required")
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APPLICATION_STORE_URL"); v != "" {
		c.APIs.ApplicationStoreURL = v
	}
	if v := os.Getenv("OASYS_API_URL"); v != "" {
		c.APIs.OasysURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("AUDIT_POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}
