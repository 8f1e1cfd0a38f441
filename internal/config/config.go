package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"medicine-tracker/internal/platform/logger"
)

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

type Config struct {
	Port        string
	Environment string

	DBDriver   Driver
	DBDSN      string
	SQLitePath string

	// JWTSecret vacío = modo dev (header X-Debug-User-ID).
	JWTSecret string

	LogLevel  logger.Level
	LogFormat logger.Format
	AppName   string

	CORSAllowedOrigins []string

	RateLimitRPS   float64
	RateLimitBurst int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load lee .env (opcional) y luego el entorno.
func Load() (*Config, error) {
	// .env es opcional (en producción las variables vienen del entorno)
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv construye la config desde un lookup (os.Getenv en prod, map en tests).
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:        get("PORT", "8080"),
		Environment: get("APP_ENV", "development"),
		DBDSN:       get("DB_DSN", ""),
		SQLitePath:  get("SQLITE_PATH", "medicine_tracker.db"),
		JWTSecret:   get("JWT_SECRET", ""),
		LogLevel:    logger.ParseLevel(getenv("LOG_LEVEL")),
		LogFormat:   logger.ParseFormat(getenv("LOG_FORMAT")),
		AppName:     get("APP_NAME", "medicine-tracker"),
	}

	// memory sólo si se pide explícito; sin DSN se persiste en SQLite
	defaultDriver := DriverSQLite
	if cfg.DBDSN != "" {
		defaultDriver = DriverPostgres
	}
	cfg.DBDriver = Driver(strings.ToLower(get("DB_DRIVER", string(defaultDriver))))

	cfg.CORSAllowedOrigins = splitList(get("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	var errs []error
	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(get("RATE_LIMIT_RPS", "10"), 64); err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(get("RATE_LIMIT_BURST", "20")); err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST: %w", err))
	}
	if cfg.ReadTimeout, err = time.ParseDuration(get("HTTP_READ_TIMEOUT", "5s")); err != nil {
		errs = append(errs, fmt.Errorf("HTTP_READ_TIMEOUT: %w", err))
	}
	if cfg.WriteTimeout, err = time.ParseDuration(get("HTTP_WRITE_TIMEOUT", "10s")); err != nil {
		errs = append(errs, fmt.Errorf("HTTP_WRITE_TIMEOUT: %w", err))
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(get("HTTP_SHUTDOWN_TIMEOUT", "10s")); err != nil {
		errs = append(errs, fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT: %w", err))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (memory|postgres|sqlite)", c.DBDriver)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate limit values must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst == 0 {
		return errors.New("RATE_LIMIT_BURST must be positive when RATE_LIMIT_RPS is set")
	}
	return nil
}

// Addr es la dirección de escucha del server HTTP.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DevAuth indica si se aceptan identidades por header sin token.
func (c *Config) DevAuth() bool {
	return c.JWTSecret == ""
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
