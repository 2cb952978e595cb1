// Package config loads service settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/joao-fontenele/logistics-erp-api/internal/domain"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port string

	StoreDriver  string
	DatabaseURL  string
	DatabaseName string

	KafkaBrokers        []string
	DocumentEventsTopic string
	AuditConsumerGroup  string
	AuditMaxAttempts    int
	AuditRetryDelay     time.Duration

	OTelEnabled    bool
	OTelEndpoint   string
	ServiceVersion string

	MigrationsPath string
}

// Load reads .env when present and then the process environment, which
// takes precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:                get("PORT", "8000"),
		DatabaseURL:         get("DATABASE_URL", ""),
		DatabaseName:        get("DATABASE_NAME", ""),
		DocumentEventsTopic: get("DOCUMENT_EVENTS_TOPIC", domain.DocumentCreatedTopic),
		AuditConsumerGroup:  get("AUDIT_CONSUMER_GROUP", "audit-worker"),
		OTelEndpoint:        get("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ServiceVersion:      get("SERVICE_VERSION", "0.1.0"),
		MigrationsPath:      get("MIGRATIONS_PATH", "file://migrations"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	defaultDriver := DriverMemory
	if cfg.DatabaseURL != "" {
		defaultDriver = DriverMongo
	}
	cfg.StoreDriver = strings.ToLower(get("STORE_DRIVER", defaultDriver))
	switch cfg.StoreDriver {
	case DriverMongo, DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for store driver %q", cfg.StoreDriver)
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if brokers := get("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	attempts := get("AUDIT_MAX_ATTEMPTS", "3")
	n, err := strconv.Atoi(attempts)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid AUDIT_MAX_ATTEMPTS %q: must be a positive integer", attempts)
	}
	cfg.AuditMaxAttempts = n

	delay := get("AUDIT_RETRY_DELAY", "500ms")
	d, err := time.ParseDuration(delay)
	if err != nil || d < 0 {
		return nil, fmt.Errorf("invalid AUDIT_RETRY_DELAY %q: must be a non-negative duration", delay)
	}
	cfg.AuditRetryDelay = d

	if v := get("OTEL_ENABLED", "false"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OTEL_ENABLED %q: %w", v, err)
		}
		cfg.OTelEnabled = enabled
	}

	return cfg, nil
}

// DatabaseURLSet reports whether a database url was configured, for
// diagnostics that must not echo the url itself.
func (c *Config) DatabaseURLSet() bool {
	return c.DatabaseURL != ""
}
