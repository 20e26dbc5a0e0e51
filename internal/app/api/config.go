package api

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	carthttpmapper "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/http/mapper"
	cartapp "github.com/Apurer/storefront-cart/internal/domains/cart/application"
	platformobservability "github.com/Apurer/storefront-cart/internal/platform/observability"
)

// StorageBackend selects where cart snapshots are written.
type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StorageRedis    StorageBackend = "redis"
	StoragePostgres StorageBackend = "postgres"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port            string
	Environment     string
	Storage         StorageBackend
	RedisAddr       string
	PostgresDSN     string
	CatalogBaseURL  string
	CatalogAPIKey   string
	TaxRate         decimal.Decimal
	// SessionCapacity bounds the cart stores kept loaded in memory.
	SessionCapacity int
	LogLevel        slog.Level
	OTLPEndpoint    string
	OTLPInsecure    bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            envDefault("PORT", "8080"),
		Environment:     envDefault("ENVIRONMENT", "local"),
		Storage:         StorageBackend(strings.ToLower(envDefault("CART_STORAGE", string(StorageMemory)))),
		RedisAddr:       envDefault("REDIS_ADDR", "localhost:6379"),
		PostgresDSN:     strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		CatalogBaseURL:  strings.TrimSpace(os.Getenv("CATALOG_BASE_URL")),
		CatalogAPIKey:   strings.TrimSpace(os.Getenv("CATALOG_API_KEY")),
		TaxRate:         carthttpmapper.DefaultTaxRate,
		SessionCapacity: cartapp.DefaultSessionCapacity,
		OTLPEndpoint:    strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:    !isFalsy(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")),
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port, got %q", cfg.Port)
	}
	switch cfg.Storage {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required when CART_STORAGE=%s", StoragePostgres)
		}
	default:
		return Config{}, fmt.Errorf("CART_STORAGE must be one of memory, redis, postgres, got %q", cfg.Storage)
	}
	if raw := strings.TrimSpace(os.Getenv("CART_TAX_RATE")); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return Config{}, fmt.Errorf("CART_TAX_RATE must be a decimal in [0, 1), got %q", raw)
		}
		cfg.TaxRate = rate
	}
	if raw := strings.TrimSpace(os.Getenv("CART_SESSION_CAPACITY")); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil || capacity <= 0 {
			return Config{}, fmt.Errorf("CART_SESSION_CAPACITY must be a positive integer, got %q", raw)
		}
		cfg.SessionCapacity = capacity
	}
	level, err := platformobservability.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isFalsy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "0" || value == "false" || value == "no"
}
