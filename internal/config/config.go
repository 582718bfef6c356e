package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Session backends
const (
	SessionBackendPostgres = "postgres"
	SessionBackendSQLite   = "sqlite"
	SessionBackendRedis    = "redis"
	SessionBackendMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Backend   BackendConfig   `toml:"backend"`
	Session   SessionConfig   `toml:"session"`
	Database  DatabaseConfig  `toml:"database"`
	SQLite    SQLiteConfig    `toml:"sqlite"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Countdown CountdownConfig `toml:"countdown"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды, 0 = без ограничения (нужно для SSE)
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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

// BackendConfig удалённый PreTest API
type BackendConfig struct {
	BaseURL             string `toml:"base_url"` // включая /api/v1
	Timeout             int    `toml:"timeout"`  // секунды
	HealthCheckInterval int    `toml:"health_check_interval"`
	HealthCheckTimeout  int    `toml:"health_check_timeout"`
}

type SessionConfig struct {
	Backend         string `toml:"backend"`
	CookieName      string `toml:"cookie_name"`
	CookieSecure    bool   `toml:"cookie_secure"`
	TTLHours        int    `toml:"ttl_hours"`
	JanitorInterval int    `toml:"janitor_interval"` // минуты
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
	// TrustedProxies адреса или CIDR обратных прокси; X-Forwarded-For от остальных игнорируется
	TrustedProxies []string `toml:"trusted_proxies"`
}

type CountdownConfig struct {
	TickMillis     int `toml:"tick_millis"`
	ResyncInterval int `toml:"resync_interval"` // секунды, 0 = только по истечении таймеров
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

// URL строка подключения в формате URL (для golang-migrate)
func (d DatabaseConfig) URL() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    0,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "pretest_dashboard",
		},
		Backend: BackendConfig{
			BaseURL:             "https://api.pre-test.uz/api/v1",
			Timeout:             30,
			HealthCheckInterval: 30,
			HealthCheckTimeout:  5,
		},
		Session: SessionConfig{
			Backend:         SessionBackendSQLite,
			CookieName:      "pretest_sid",
			TTLHours:        24 * 14,
			JanitorInterval: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		SQLite: SQLiteConfig{Path: "sessions.db"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 200,
			Burst:             50,
		},
		Countdown: CountdownConfig{
			TickMillis:     1000,
			ResyncInterval: 30,
		},
	}
}

// Load читает TOML-файл поверх значений по умолчанию, затем .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// .env опционален
	_ = godotenv.Load()
	applyEnv(cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("PRETEST_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := getenv("PRETEST_SESSION_BACKEND"); v != "" {
		cfg.Session.Backend = v
	}
	if v := getenv("PRETEST_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := getenv("PRETEST_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := getenv("PRETEST_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := getenv("PRETEST_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := getenv("PRETEST_DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := getenv("PRETEST_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := getenv("PRETEST_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := getenv("PRETEST_TRUSTED_PROXIES"); v != "" {
		cfg.RateLimit.TrustedProxies = strings.Split(v, ",")
	}
	if v := getenv("PRETEST_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return fmt.Errorf("%w: backend.base_url is required", ErrInvalidConfig)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive", ErrInvalidConfig)
	}
	if c.Backend.HealthCheckInterval <= 0 || c.Backend.HealthCheckTimeout <= 0 {
		return fmt.Errorf("%w: backend health check interval and timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}

	switch c.Session.Backend {
	case SessionBackendPostgres, SessionBackendSQLite, SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("%w: unknown session.backend %q", ErrInvalidConfig, c.Session.Backend)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("%w: session.cookie_name is required", ErrInvalidConfig)
	}
	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("%w: session.ttl_hours must be positive", ErrInvalidConfig)
	}
	if c.Session.JanitorInterval <= 0 {
		return fmt.Errorf("%w: session.janitor_interval must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !isAddrOrPrefix(strings.TrimSpace(proxy)) {
			return fmt.Errorf("%w: rate_limit.trusted_proxies: %q is not an IP or CIDR", ErrInvalidConfig, proxy)
		}
	}
	if c.Countdown.TickMillis <= 0 {
		return fmt.Errorf("%w: countdown.tick_millis must be positive", ErrInvalidConfig)
	}
	if c.Countdown.ResyncInterval < 0 {
		return fmt.Errorf("%w: countdown.resync_interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

func isAddrOrPrefix(s string) bool {
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}
