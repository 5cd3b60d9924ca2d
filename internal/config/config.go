package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error DEBUG INFO WARN ERROR"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string // session log files are written here as well when set
	ServiceName string
	Version     string
	Environment string
	APIKey      string // API key required on every non-public route

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string

	// Override storage
	StorageDriver     string `validate:"oneof=memory postgres"`
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Dataset sources
	CatalogPath   string `validate:"required"`
	PricesPath    string
	PricesURL     string `validate:"omitempty,url"`
	PricesTimeout time.Duration
	// RefreshInterval reloads both sources periodically; 0 disables
	RefreshInterval time.Duration

	// Result cache
	CacheSize       int `validate:"min=1"`
	CacheTTL        time.Duration
	CacheSlidingTTL time.Duration

	// Defaults applied to run parameters missing from a request
	Defaults domain.RunParams
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", ""),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StorageDriver:     getEnv("STORAGE_DRIVER", StorageMemory),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "blueprintcost"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		CatalogPath:   getEnv("CATALOG_PATH", ConfigPathCatalog),
		PricesPath:    getEnv("PRICES_PATH", ConfigPathPrices),
		PricesURL:     getEnv("PRICES_URL", ""),
		PricesTimeout: getEnvAsDuration("PRICES_TIMEOUT", 30*time.Second),

		RefreshInterval: getEnvAsDuration("DATASET_REFRESH_INTERVAL", 0),

		CacheSize:       getEnvAsInt("CACHE_SIZE", 64),
		CacheTTL:        getEnvAsDuration("CACHE_TTL", 30*time.Minute),
		CacheSlidingTTL: getEnvAsDuration("CACHE_SLIDING_TTL", 5*time.Minute),

		Defaults: domain.RunParams{
			DefaultME:              getEnvAsInt("DEFAULT_ME", 0),
			DefaultTE:              getEnvAsInt("DEFAULT_TE", 0),
			StructureBonus:         getEnvAsFloat("STRUCTURE_BONUS", 0),
			RigBonus:               getEnvAsFloat("RIG_BONUS", 0),
			IndustryLevel:          getEnvAsInt("INDUSTRY_LEVEL", 0),
			AdvancedIndustryLevel:  getEnvAsInt("ADVANCED_INDUSTRY_LEVEL", 0),
			ReactionStructureBonus: getEnvAsFloat("REACTION_STRUCTURE_BONUS", 0),
			ReactionRigBonus:       getEnvAsFloat("REACTION_RIG_BONUS", 0),
			ReactionLevel:          getEnvAsInt("REACTION_LEVEL", 0),
		},
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field ranges and the default run parameters
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("invalid default run parameters: %w", err)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("invalid configuration: DATASET_REFRESH_INTERVAL must not be negative")
	}
	if c.PricesPath == "" && c.PricesURL == "" {
		return fmt.Errorf("invalid configuration: one of PRICES_PATH or PRICES_URL must be set")
	}
	return nil
}

// UsePostgres reports whether overrides are persisted in PostgreSQL
func (c *Config) UsePostgres() bool {
	return c.StorageDriver == StoragePostgres
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
