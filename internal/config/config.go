package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Persistence backend selectors.
const (
	PersistenceRedis    = "redis"
	PersistencePostgres = "postgres"
	PersistenceMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Snapshot persistence backend: redis, postgres or memory.
	Persistence string
	RedisURL    string
	DatabaseURL string

	// Kafka brokers for the event publisher; empty means in-process pub/sub.
	KafkaBrokers []string

	// SeedDemoData loads the demo dataset when no snapshot exists yet.
	SeedDemoData bool
}

// LoadConfig reads configuration from environment variables, with an optional
// .env file for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Persistence:  strings.ToLower(getEnv("PERSISTENCE_BACKEND", PersistenceMemory)),
		RedisURL:     os.Getenv("REDIS_URL"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SeedDemoData: getEnv("SEED_DEMO_DATA", "false") == "true",
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	switch cfg.Persistence {
	case PersistenceRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("PERSISTENCE_BACKEND=redis requires REDIS_URL")
		}
	case PersistencePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PERSISTENCE_BACKEND=postgres requires DATABASE_URL")
		}
	case PersistenceMemory:
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
