package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds connection settings for the Redis profile cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds settings for validating bearer tokens against the
// external identity service and caching the results.
type AuthConfig struct {
	ServiceURL     string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

// SessionConfig controls application (upload) session issuance.
type SessionConfig struct {
	TTL             time.Duration
	MaxUploads      int
	RateLimitCount  int
	RateLimitWindow time.Duration
}

// CleanupConfig holds defaults for the soft-delete retention job.
type CleanupConfig struct {
	DefaultRetentionDays int
	MinRetentionDays     int
	DefaultBatchSize     int
	MaxBatchSize         int
}

// WebhookConfig holds settings for inbound delivery-partner webhooks.
type WebhookConfig struct {
	Secret string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Session  SessionConfig
	Cleanup  CleanupConfig
	Webhook  WebhookConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			ServiceURL:     getEnv("AUTH_SERVICE_URL", ""),
			RequestTimeout: getEnvDuration("AUTH_REQUEST_TIMEOUT", 5*time.Second),
			CacheTTL:       getEnvDuration("AUTH_CACHE_TTL", 5*time.Minute),
		},
		Session: SessionConfig{
			TTL:             getEnvDuration("SESSION_TTL", 2*time.Hour),
			MaxUploads:      getEnvInt("SESSION_MAX_UPLOADS", 3),
			RateLimitCount:  getEnvInt("SESSION_RATE_LIMIT_COUNT", 5),
			RateLimitWindow: getEnvDuration("SESSION_RATE_LIMIT_WINDOW", time.Hour),
		},
		Cleanup: CleanupConfig{
			DefaultRetentionDays: getEnvInt("CLEANUP_RETENTION_DAYS", 90),
			MinRetentionDays:     getEnvInt("CLEANUP_MIN_RETENTION_DAYS", 7),
			DefaultBatchSize:     getEnvInt("CLEANUP_BATCH_SIZE", 100),
			MaxBatchSize:         getEnvInt("CLEANUP_MAX_BATCH_SIZE", 1000),
		},
		Webhook: WebhookConfig{
			Secret: getEnv("WEBHOOK_SECRET", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
