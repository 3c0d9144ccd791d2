package config

import (
	"os"
	"strconv"
	"time"

	"eventsync/internal/cache"
	"eventsync/internal/database"
	"eventsync/internal/external"
	"eventsync/internal/messaging"
)

// Config carries settings for both services. Each binary reads the sections
// it owns; the databases are separate on purpose, one per service.
type Config struct {
	GinMode   string
	LogLevel  string
	LogFormat string

	EventServicePort  string
	TicketServicePort string

	EventDB  database.Config
	TicketDB database.Config

	NATS         messaging.Config
	Cache        cache.Config
	EventService external.Config
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		EventServicePort:  getEnv("EVENT_SERVICE_PORT", "8081"),
		TicketServicePort: getEnv("TICKET_SERVICE_PORT", "8082"),

		EventDB:  loadDatabase("EVENT_DB_NAME", "eventsync_events"),
		TicketDB: loadDatabase("TICKET_DB_NAME", "eventsync_tickets"),

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "eventsync"),
			ClientID:  getEnv("NATS_CLIENT_ID", "eventsync-api"),
			Enabled:   getEnvBool("NATS_ENABLED", false),
		},

		Cache: cache.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SEC", 30)) * time.Second,
			Enabled:  getEnvBool("CACHE_ENABLED", false),
		},

		EventService: external.Config{
			BaseURL: getEnv("EVENT_SERVICE_URL", "http://localhost:8081"),
			Timeout: time.Duration(getEnvInt("EVENT_SERVICE_TIMEOUT_SEC", 5)) * time.Second,
		},
	}
}

func loadDatabase(nameVar, defaultName string) database.Config {
	return database.Config{
		Host:               getEnv("DB_HOST", "localhost"),
		Port:               getEnvInt("DB_PORT", 5432),
		User:               getEnv("DB_USER", "eventsync"),
		Password:           getEnv("DB_PASSWORD", "eventsync123"),
		DBName:             getEnv(nameVar, defaultName),
		SSLMode:            getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
		ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
