package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL settings for the optional ask audit log.
// The audit log is disabled when Host is empty.
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

// Enabled reports whether a database host has been configured.
func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

// MinIOConfig holds object storage settings for the optional upload archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an object storage endpoint has been configured.
func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// GeminiConfig holds settings for the completion service.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port             string
	BodyLimitMB      int
	CORSAllowOrigins string
	PublicAPIURL     string
	LogTimezone      string
	MetricsEnabled   bool
	Gemini           GeminiConfig
	Database         DatabaseConfig
	MinIO            MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:             getEnv("PORT", "8000"),
		BodyLimitMB:      getEnvInt("BODY_LIMIT_MB", 50),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		PublicAPIURL:     strings.TrimRight(getEnv("PUBLIC_API_URL", ""), "/"),
		LogTimezone:      getEnv("LOG_TIMEZONE", "UTC"),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		},
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
	}
}

// BodyLimitBytes converts BodyLimitMB to bytes, falling back to 50 MiB for non-positive values.
func (c *AppConfig) BodyLimitBytes() int {
	if c.BodyLimitMB <= 0 {
		return 50 << 20
	}
	return c.BodyLimitMB << 20
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
