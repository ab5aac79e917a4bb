package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("PUBLIC_API_URL", "https://api.example.com/")

	cfg := Load()

	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.False(t, cfg.MinIO.Enabled())
	assert.Equal(t, "https://api.example.com", cfg.PublicAPIURL)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "GEMINI_MODEL", "BODY_LIMIT_MB", "CORS_ALLOW_ORIGINS", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.Gemini.Model)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 50<<20, cfg.BodyLimitBytes())
}

func TestBodyLimitBytes(t *testing.T) {
	assert.Equal(t, 5<<20, (&AppConfig{BodyLimitMB: 5}).BodyLimitBytes())
	assert.Equal(t, 50<<20, (&AppConfig{BodyLimitMB: -1}).BodyLimitBytes())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
