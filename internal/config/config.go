package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Storage  StorageConfig  `json:"storage"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	APIKey   string         `json:"api_key,omitempty"`
	Auth     AuthConfig     `json:"auth"`
	Webhook  WebhookConfig  `json:"webhook"`
	Dispatch DispatchConfig `json:"dispatch"`
	Metrics  MetricsConfig  `json:"metrics"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	AllowedOrigins  []string      `json:"allowed_origins"`
	// SOS create is limited per client IP.
	CreateRPS   float64 `json:"create_rps"`
	CreateBurst int     `json:"create_burst"`
}

type StorageConfig struct {
	Driver string `json:"driver"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
	Disabled bool   `json:"disabled"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
}

type WebhookConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

type DispatchConfig struct {
	PriorityPolicy    string        `json:"priority_policy"`
	AssignMaxAttempts int           `json:"assign_max_attempts"`
	StaleAfter        time.Duration `json:"stale_after"`
	StaleInterval     time.Duration `json:"stale_interval"`
}

type MetricsConfig struct {
	Addr string `json:"addr"`
}

func Load(ctx context.Context) (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.WarnContext(ctx, ".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvList("HTTP_ALLOWED_ORIGINS", nil),
			CreateRPS:       getEnvFloat("HTTP_CREATE_RPS", 1),
			CreateBurst:     getEnvInt("HTTP_CREATE_BURST", 5),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", DriverPostgres),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "swiftaid"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Disabled: getEnvBool("REDIS_DISABLED", false),
		},
		APIKey: getEnv("API_KEY", ""),
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Webhook: WebhookConfig{
			URL:      getEnv("WEBHOOK_URL", ""),
			Disabled: getEnvBool("WEBHOOK_DISABLED", false),
		},
		Dispatch: DispatchConfig{
			PriorityPolicy:    getEnv("PRIORITY_POLICY", ""),
			AssignMaxAttempts: getEnvInt("ASSIGN_MAX_ATTEMPTS", 3),
			StaleAfter:        getEnvDuration("STALE_AFTER", 10*time.Minute),
			StaleInterval:     getEnvDuration("STALE_INTERVAL", 30*time.Second),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ":9090"),
		},
	}
	if cfg.Webhook.URL == "" {
		cfg.Webhook.Disabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.InfoContext(ctx, "Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("redis_disabled", cfg.Redis.Disabled),
		slog.Bool("webhook_disabled", cfg.Webhook.Disabled))

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		errs = append(errs, errors.New("HTTP_PORT must start with ':' like ':8080'"))
	}
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" {
			errs = append(errs, errors.New("POSTGRES_HOST required"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q", DriverPostgres, DriverMemory))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET required"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY required"))
	}
	if c.Dispatch.AssignMaxAttempts < 1 {
		errs = append(errs, errors.New("ASSIGN_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Dispatch.StaleAfter <= 0 || c.Dispatch.StaleInterval <= 0 {
		errs = append(errs, errors.New("STALE_AFTER and STALE_INTERVAL must be positive"))
	}
	if c.Http.CreateRPS <= 0 || c.Http.CreateBurst < 1 {
		errs = append(errs, errors.New("HTTP_CREATE_RPS and HTTP_CREATE_BURST must be positive"))
	}
	if !c.Webhook.Disabled && c.Redis.Disabled {
		errs = append(errs, errors.New("webhooks need Redis: set WEBHOOK_DISABLED=true or enable Redis"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
