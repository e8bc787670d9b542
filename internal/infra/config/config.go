package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the dashboard reads at start-up.
type Config struct {
	Port           string        `yaml:"port"`
	BackendURL     string        `yaml:"backend_url"`
	BackendTimeout time.Duration `yaml:"backend_timeout"`
	SessionSecret  string        `yaml:"session_secret"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	RedisAddr      string        `yaml:"redis_addr"`
	RedisPassword  string        `yaml:"redis_password"`
	RedisDB        int           `yaml:"redis_db"`
	LayoutCacheTTL time.Duration `yaml:"layout_cache_ttl"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
	PageSize       int           `yaml:"page_size"`
	LogLevel       string        `yaml:"log_level"`
	Timezone       string        `yaml:"timezone"`
}

func defaults() Config {
	return Config{
		Port:           "8080",
		BackendURL:     "http://localhost:8081",
		BackendTimeout: 30 * time.Second,
		SessionSecret:  "change-me",
		SessionTTL:     8 * time.Hour,
		LayoutCacheTTL: 5 * time.Minute,
		SearchDebounce: 300 * time.Millisecond,
		PageSize:       10,
		LogLevel:       "info",
		Timezone:       "America/Argentina/Buenos_Aires",
	}
}

// Load builds the config from defaults, then the YAML file named by
// APP_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := defaults()

	if path := getenv("APP_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	setString(getenv, "APP_PORT", &cfg.Port)
	setString(getenv, "BACKEND_URL", &cfg.BackendURL)
	setString(getenv, "SESSION_SECRET", &cfg.SessionSecret)
	setString(getenv, "REDIS_ADDR", &cfg.RedisAddr)
	setString(getenv, "REDIS_PASSWORD", &cfg.RedisPassword)
	setString(getenv, "LOG_LEVEL", &cfg.LogLevel)
	setString(getenv, "TIMEZONE", &cfg.Timezone)

	var err error
	if err = setDuration(getenv, "BACKEND_TIMEOUT", &cfg.BackendTimeout); err != nil {
		return nil, err
	}
	if err = setDuration(getenv, "SESSION_TTL", &cfg.SessionTTL); err != nil {
		return nil, err
	}
	if err = setDuration(getenv, "LAYOUT_CACHE_TTL", &cfg.LayoutCacheTTL); err != nil {
		return nil, err
	}
	if err = setDuration(getenv, "SEARCH_DEBOUNCE", &cfg.SearchDebounce); err != nil {
		return nil, err
	}
	if err = setInt(getenv, "PAGE_SIZE", &cfg.PageSize); err != nil {
		return nil, err
	}
	if err = setInt(getenv, "REDIS_DB", &cfg.RedisDB); err != nil {
		return nil, err
	}
	if v := getenv("SECURE_COOKIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SECURE_COOKIES: %w", err)
		}
		cfg.SecureCookies = b
	}

	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is empty")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &cfg, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LogLevel onto slog levels.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setString(getenv func(string) string, key string, dst *string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(getenv func(string) string, key string, dst *time.Duration) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(getenv func(string) string, key string, dst *int) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
