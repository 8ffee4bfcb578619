package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeremiahbrem/biztime/internal/platform/envutil"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type DBConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	SQLitePath      string        `yaml:"sqlite_path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type MetricsConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Addr             string        `yaml:"addr"`
	LatencyThreshold float64       `yaml:"latency_threshold_seconds"`
	ScrapeInterval   time.Duration `yaml:"scrape_interval"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	ServiceName      string        `yaml:"service_name"`
	Environment      string        `yaml:"environment"`
	Version          string        `yaml:"version"`
	Port             string        `yaml:"port"`
	LogMode          string        `yaml:"log_mode"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
	CORSAllowOrigins []string      `yaml:"cors_allow_origins"`
	Swagger          bool          `yaml:"swagger"`
	DB               DBConfig      `yaml:"db"`
	Metrics          MetricsConfig `yaml:"metrics"`
	Otel             OtelConfig    `yaml:"otel"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:     "biztime",
		Environment:     "development",
		Port:            "8080",
		LogMode:         "development",
		ShutdownTimeout: 10 * time.Second,
		Swagger:         true,
		DB: DBConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "biztime",
			SSLMode:         "disable",
			SQLitePath:      "biztime.db",
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Metrics: MetricsConfig{
			LatencyThreshold: 0.5,
			ScrapeInterval:   10 * time.Second,
		},
		Otel: OtelConfig{
			SampleRatio: 0.1,
		},
	}
}

// LoadConfig starts from defaults, overlays CONFIG_FILE when set and lets
// environment variables win over both.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
		log.Info("Loaded config file", "path", path)
	}
	applyEnv(&cfg, log)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, log *logger.Logger) {
	cfg.ServiceName = envutil.String("SERVICE_NAME", cfg.ServiceName, log)
	cfg.Environment = envutil.String("APP_ENV", cfg.Environment, log)
	cfg.Version = envutil.String("APP_VERSION", cfg.Version, log)
	cfg.Port = envutil.String("PORT", cfg.Port, log)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode, log)
	cfg.ShutdownTimeout = envutil.Duration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, log)
	cfg.CORSAllowOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins, log)
	cfg.Swagger = envutil.Bool("SWAGGER_ENABLED", cfg.Swagger, log)

	cfg.DB.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.DB.Driver, log))
	cfg.DB.Host = envutil.String("POSTGRES_HOST", cfg.DB.Host, log)
	cfg.DB.Port = envutil.String("POSTGRES_PORT", cfg.DB.Port, log)
	cfg.DB.User = envutil.String("POSTGRES_USER", cfg.DB.User, log)
	cfg.DB.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Password, log)
	cfg.DB.Name = envutil.String("POSTGRES_NAME", cfg.DB.Name, log)
	cfg.DB.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.SSLMode, log)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath, log)
	cfg.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns, log)
	cfg.DB.MaxIdleConns = envutil.Int("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns, log)
	cfg.DB.ConnMaxLifetime = envutil.Duration("DB_CONN_MAX_LIFETIME", cfg.DB.ConnMaxLifetime, log)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled, log)
	cfg.Metrics.Addr = envutil.String("METRICS_ADDR", cfg.Metrics.Addr, log)
	cfg.Metrics.ScrapeInterval = envutil.Duration("METRICS_SCRAPE_INTERVAL", cfg.Metrics.ScrapeInterval, log)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled, log)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint, log)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers, log)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure, log)
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.DB.Driver)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
