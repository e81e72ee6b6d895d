package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	APITimeout time.Duration

	TokenStore    string
	TokenFilePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	NATSURL         string
	NATSConnTimeout time.Duration

	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	WatchInterval time.Duration
	WatchQuery    string
	WatchLocation string
	WatchPageSize int

	OTLPCollectorURL string
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	config := &Config{
		APIBaseURL: getEnvString("NEXUS_API_BASE_URL", "http://localhost:8080/api/v1"),
		APITimeout: getEnvDuration("NEXUS_API_TIMEOUT", 10*time.Second),

		TokenStore:    getEnvString("NEXUS_TOKEN_STORE", "file"),
		TokenFilePath: getEnvString("NEXUS_TOKEN_FILE", ""),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "nexus"),

		WatchInterval: getEnvDuration("WATCH_INTERVAL", 15*time.Minute),
		WatchQuery:    getEnvString("WATCH_QUERY", ""),
		WatchLocation: getEnvString("WATCH_LOCATION", ""),
		WatchPageSize: getEnvInt("WATCH_PAGE_SIZE", 50),

		OTLPCollectorURL: getEnvString("OTLP_COLLECTOR_URL", "localhost:4317"),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
