package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	AttemptsBackendMemory = "memory"
	AttemptsBackendRedis  = "redis"
)

// ErrInvalidConfig ошибка валидации конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Storage        StorageConfig        `toml:"storage"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Events         EventsConfig         `toml:"events"`
	Attempts       AttemptsConfig       `toml:"attempts"`
	RateLimit      RateLimitConfig      `toml:"ratelimit"`
	Sessions       SessionsConfig       `toml:"sessions"`
	Calendar       CalendarConfig       `toml:"calendar"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// StorageConfig driver: postgres | memory
type StorageConfig struct {
	Driver string `toml:"driver"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig каталог бизнесов и услуг.
// Если задан static_file, HTTP клиент не используется.
type CatalogServiceConfig struct {
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"`
	CacheTTL   int    `toml:"cache_ttl"` // секунды, 0 - без кэша
	StaticFile string `toml:"static_file"`
}

type EventsConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// AttemptsConfig ограничение попыток создания резерваций, lockout в минутах
type AttemptsConfig struct {
	MaxAttempts int    `toml:"max_attempts"`
	Lockout     int    `toml:"lockout_minutes"`
	Backend     string `toml:"backend"`
	RedisAddr   string `toml:"redis_addr"`
	RedisDB     int    `toml:"redis_db"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// SessionsConfig сессии бронирования, ttl в минутах
type SessionsConfig struct {
	TTL int `toml:"ttl_minutes"`
}

type CalendarConfig struct {
	DefaultLocale string `toml:"default_locale"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "reservations",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation_service",
		},
		CatalogService: CatalogServiceConfig{
			URL:      "http://localhost:8081",
			Timeout:  5,
			CacheTTL: 60,
		},
		Events: EventsConfig{
			Topic:        "reservations.events",
			WriteTimeout: 5,
		},
		Attempts: AttemptsConfig{
			MaxAttempts: 5,
			Lockout:     15,
			Backend:     AttemptsBackendMemory,
			RedisAddr:   "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Sessions: SessionsConfig{TTL: 30},
		Calendar: CalendarConfig{DefaultLocale: "en"},
	}
}

// Load читает TOML файл поверх значений по умолчанию,
// применяет переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv секреты и адреса можно переопределить через окружение
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Attempts.RedisAddr = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.CatalogService.StaticFile == "" && c.CatalogService.URL == "" {
		return fmt.Errorf("%w: catalog_service.url or catalog_service.static_file is required", ErrInvalidConfig)
	}

	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("%w: events.brokers is required when events are enabled", ErrInvalidConfig)
	}

	switch c.Attempts.Backend {
	case AttemptsBackendMemory:
	case AttemptsBackendRedis:
		if c.Attempts.RedisAddr == "" {
			return fmt.Errorf("%w: attempts.redis_addr is required for redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown attempts.backend %q", ErrInvalidConfig, c.Attempts.Backend)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit.rps and ratelimit.burst must be positive", ErrInvalidConfig)
	}

	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func (s SessionsConfig) TTLDuration() time.Duration {
	return time.Duration(s.TTL) * time.Minute
}

func (a AttemptsConfig) LockoutDuration() time.Duration {
	return time.Duration(a.Lockout) * time.Minute
}
