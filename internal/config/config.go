package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"todo_api/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string `toml:"app_port"`
	LogLevel string `toml:"log_level"`
	LogJSON  bool   `toml:"log_json"`
	GinMode  string `toml:"gin_mode"`

	// Redis нужен только для rate limit; без адреса лимитер работает в памяти
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	APIRateLimit         int `toml:"api_rate_limit"`
	APIRateWindowSeconds int `toml:"api_rate_window_seconds"`

	AllowedOrigins []string `toml:"allowed_origins"`

	ShutdownTimeoutSeconds int `toml:"shutdown_timeout_seconds"`
}

func defaults() *Config {
	return &Config{
		AppPort:                "8080",
		LogLevel:               "info",
		GinMode:                "release",
		APIRateLimit:           100,
		APIRateWindowSeconds:   60,
		AllowedOrigins:         []string{"*"},
		ShutdownTimeoutSeconds: 10,
	}
}

// Load reads .env (if present), the optional TOML file named by CONFIG_FILE,
// then environment variables. Later sources win.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	return cfg
}

func load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("APP_PORT"); v != "" {
		cfg.AppPort = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		cfg.LogJSON = v == "true" || v == "1"
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}

	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateLimit = n
		}
	}
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateWindowSeconds = n
		}
	}

	// Список через запятую
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ShutdownTimeoutSeconds = n
		}
	}
}

func (c *Config) APIRateWindow() time.Duration {
	return time.Duration(c.APIRateWindowSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
