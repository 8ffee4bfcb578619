package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

var configEnvKeys = []string{
	"CONFIG_FILE", "SERVICE_NAME", "APP_ENV", "APP_VERSION", "PORT", "LOG_MODE",
	"SHUTDOWN_TIMEOUT", "CORS_ALLOW_ORIGINS", "SWAGGER_ENABLED", "DB_DRIVER",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD",
	"POSTGRES_NAME", "POSTGRES_SSLMODE", "SQLITE_PATH", "DB_MAX_OPEN_CONNS",
	"DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "METRICS_ENABLED", "METRICS_ADDR",
	"METRICS_SCRAPE_INTERVAL", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_EXPORTER_OTLP_HEADERS", "OTEL_EXPORTER_OTLP_INSECURE",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biztime.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
shutdown_timeout: 3s
cors_allow_origins: ["https://a.example.com"]
db:
  driver: sqlite
  sqlite_path: /tmp/biztime.db
metrics:
  enabled: true
`), 0o600))

	clearConfigEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example.com"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/biztime.db", cfg.DB.SQLitePath)
	assert.Equal(t, 5, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "biztime", cfg.ServiceName)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	_, err := LoadConfig(logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0o600))
	clearConfigEnv(t)
	t.Setenv("CONFIG_FILE", path)
	_, err := LoadConfig(logger.Nop())
	require.Error(t, err)
}
