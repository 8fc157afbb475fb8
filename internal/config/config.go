package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backends for the cart slot
const (
	CartBackendFile  = "file"
	CartBackendRedis = "redis"
)

// Catalog sources
const (
	CatalogSourceMemory   = "memory"
	CatalogSourcePostgres = "postgres"
)

// Config holds the whole application configuration, populated from
// environment variables
type Config struct {
	App      AppConfig
	Cart     CartConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	Currency    string // display currency: USD, EUR
}

type CartConfig struct {
	Backend string // file, redis

	// FilePath is the local slot for the file backend
	FilePath string

	// StorageKey is the Redis key for the redis backend
	StorageKey string

	// MaxAgeDays discards persisted carts older than this at load time;
	// 0 disables the check
	MaxAgeDays int
}

type CatalogConfig struct {
	Source string // memory, postgres
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type AdminConfig struct {
	Username string
	// PasswordHash is a bcrypt hash; empty disables admin login entirely
	PasswordHash      string
	JWTSecret         string
	TokenExpiryMinute int
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Currency:    getEnv("APP_CURRENCY", "USD"),
		},
		Cart: CartConfig{
			Backend:    getEnv("CART_BACKEND", CartBackendFile),
			FilePath:   getEnv("CART_FILE_PATH", "data/cart.json"),
			StorageKey: getEnv("CART_STORAGE_KEY", "storefront:cart:v1"),
			MaxAgeDays: getEnvInt("CART_MAX_AGE_DAYS", 7),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", CatalogSourceMemory),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
			MinConns: getEnvInt("DB_MIN_CONNS", 2),
		},
		Admin: AdminConfig{
			Username:          getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash:      getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiryMinute: getEnvInt("JWT_EXPIRY_MINUTES", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cart.Backend {
	case CartBackendFile, CartBackendRedis:
	default:
		return fmt.Errorf("invalid CART_BACKEND %q (expected %q or %q)",
			c.Cart.Backend, CartBackendFile, CartBackendRedis)
	}

	switch c.Catalog.Source {
	case CatalogSourceMemory, CatalogSourcePostgres:
	default:
		return fmt.Errorf("invalid CATALOG_SOURCE %q (expected %q or %q)",
			c.Catalog.Source, CatalogSourceMemory, CatalogSourcePostgres)
	}

	if c.Cart.MaxAgeDays < 0 {
		return fmt.Errorf("CART_MAX_AGE_DAYS must be >= 0")
	}
	return nil
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
