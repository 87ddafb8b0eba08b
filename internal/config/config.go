package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	defaultJWTSecret = "your-secret-key-change-in-production"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Librarian LibrarianConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type StorageConfig struct {
	Driver      string // memory, postgres
	AutoMigrate bool   // apply migrations on startup (postgres only)
	SeedFile    string // optional YAML file of sample patrons
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

type LibrarianConfig struct {
	// KeyHash is the bcrypt hash of the shared librarian key
	KeyHash string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver:      getEnv("STORAGE_DRIVER", StorageMemory),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
			SeedFile:    getEnv("SEED_FILE", ""),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvDuration("JWT_TOKEN_EXPIRY", 8*time.Hour),
		},
		Librarian: LibrarianConfig{
			KeyHash: getEnv("LIBRARIAN_KEY_HASH", ""),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks config values; production requires real secrets
func (c *Config) Validate() error {
	err := validation.Errors{
		"STORAGE_DRIVER":   validation.Validate(c.Storage.Driver, validation.In(StorageMemory, StoragePostgres)),
		"APP_PORT":         validation.Validate(c.App.Port, validation.Required),
		"JWT_TOKEN_EXPIRY": validation.Validate(c.JWT.TokenExpiry, validation.Min(time.Minute)),
	}.Filter()
	if err != nil {
		return err
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Librarian.KeyHash == "" {
			return fmt.Errorf("LIBRARIAN_KEY_HASH must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
