package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

type Config struct {
	Addr                   string
	Environment            string
	LogLevel               string
	FrontendDir            string
	SeedFile               string
	JWTSecret              string
	SessionTTL             time.Duration
	SessionBackend         string
	SessionNamespace       string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	DatabaseURL            string
	RunMigrations          bool
	MaxBodyBytes           int64
	AuthRateLimitPerMinute int
	TrustProxyHeaders      bool
	MetricsEnabled         bool
	StatsRefreshSchedule   string
	ImageOrigins           []string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("dotenv load failed", "err", err)
	}

	return Config{
		Addr:                   getEnv("APP_ADDR", ":8080"),
		Environment:            getEnv("APP_ENV", "development"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		FrontendDir:            getEnv("FRONTEND_DIR", "frontend/dist"),
		SeedFile:               getEnv("SEED_FILE", ""),
		JWTSecret:              getEnv("JWT_SECRET", "dev-secret"),
		SessionTTL:             getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionBackend:         strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory)),
		SessionNamespace:       getEnv("SESSION_NAMESPACE", "staffdesk"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		RunMigrations:          getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:           int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		AuthRateLimitPerMinute: getEnvInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		TrustProxyHeaders:      getEnvBool("TRUST_PROXY_HEADERS", false),
		MetricsEnabled:         getEnvBool("METRICS_ENABLED", true),
		StatsRefreshSchedule:   getEnv("STATS_REFRESH_SCHEDULE", "@every 1m"),
		ImageOrigins:           getEnvList("CSP_IMAGE_ORIGINS", []string{"https://dummyjson.com"}),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_BACKEND is redis")
		}
	case SessionBackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when SESSION_BACKEND is postgres")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of memory, redis, postgres")
	}
	if strings.TrimSpace(c.SessionNamespace) == "" {
		return fmt.Errorf("SESSION_NAMESPACE must not be empty")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" || c.JWTSecret == "dev-secret" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.SessionBackend == SessionBackendMemory {
			return fmt.Errorf("SESSION_BACKEND memory does not survive restarts; use redis or postgres in production")
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.AuthRateLimitPerMinute <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
