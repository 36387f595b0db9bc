package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database for slim containers

	"hotel-backend/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config is populated from environment variables once at startup.
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Pricing  PricingConfig
	Queue    QueueConfig
	Audit    AuditConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// PricingConfig holds the knobs the pricing engine reads.
type PricingConfig struct {
	// CapAmountOff limits an AmountOff discount to the eligible subtotal.
	CapAmountOff bool
	// TimeZone is the IANA zone calendar dates are evaluated in.
	TimeZone        string
	CatalogCacheTTL time.Duration
}

// Location resolves TimeZone. Validate has already rejected unknown zones.
func (p PricingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type QueueConfig struct {
	AuditQueue  string
	Concurrency int
}

type AuditConfig struct {
	MaxUsesPerYear int
}

func Load() (*Config, error) {
	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Hotel API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: dbCfg,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
		},
		Pricing: PricingConfig{
			CapAmountOff:    getEnvBool("PRICING_CAP_AMOUNT_OFF", false),
			TimeZone:        getEnv("PRICING_TIME_ZONE", "UTC"),
			CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		},
		Queue: QueueConfig{
			AuditQueue:  getEnv("AUDIT_QUEUE", "audit"),
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 5),
		},
		Audit: AuditConfig{
			MaxUsesPerYear: getEnvInt("AUDIT_MAX_USES_PER_YEAR", 1),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Pricing.TimeZone); err != nil {
		return fmt.Errorf("PRICING_TIME_ZONE %q is not a known time zone", c.Pricing.TimeZone)
	}
	if c.Audit.MaxUsesPerYear < 1 {
		return fmt.Errorf("AUDIT_MAX_USES_PER_YEAR must be at least 1")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database == nil || c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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
	valueStr := strings.TrimSpace(os.Getenv(key))
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
