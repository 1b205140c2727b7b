// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token     string `yaml:"token"`
	Mode      string `yaml:"mode"` // polling only
	Workers   int    `yaml:"workers"`
	Language  string `yaml:"language"`
	RateLimit int    `yaml:"rate_limit"` // messages per chat per minute, needs redis
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type ShortenerConfig struct {
	BaseURL     string `yaml:"base_url"`
	Path        string `yaml:"path"`
	ResultField string `yaml:"result_field"` // gjson path into the response body
	RawQuery    bool   `yaml:"raw_query"`    // interpolate token and url without escaping
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Window   time.Duration `yaml:"window"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	HTTP      HTTPConfig      `yaml:"http"`
	Store     StoreConfig     `yaml:"store"`
	Shortener ShortenerConfig `yaml:"shortener"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file named by CONFIG_PATH (config.yaml by
// default), then applies environment overrides. A .env file in the working
// directory is loaded into the environment first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config.yaml")
	var cfg Config
	b, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env only
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Bot.Token = getEnv("TELEGRAM_BOT_TOKEN", cfg.Bot.Token)
	cfg.Bot.Language = getEnv("BOT_LANGUAGE", cfg.Bot.Language)
	cfg.Store.Path = getEnv("DB_FILE", cfg.Store.Path)
	cfg.Shortener.BaseURL = getEnv("SHORTENER_BASE_URL", cfg.Shortener.BaseURL)
	cfg.Shortener.Path = getEnv("SHORTENER_PATH", cfg.Shortener.Path)
	cfg.Shortener.ResultField = getEnv("SHORTENER_RESULT_FIELD", cfg.Shortener.ResultField)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT must be a number: %w", err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv("SHORTENER_RAW_QUERY"); v != "" {
		raw, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SHORTENER_RAW_QUERY must be a bool: %w", err)
		}
		cfg.Shortener.RawQuery = raw
	}

	env := strings.ToLower(getEnv("APP_ENV", "production"))
	cfg.Runtime.Dev = env == "development" || env == "dev"
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Language == "" {
		cfg.Bot.Language = "en"
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.RateLimit <= 0 {
		cfg.Bot.RateLimit = 20
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "database.json"
	}
	if cfg.Shortener.Path == "" {
		cfg.Shortener.Path = "/api"
	}
	if cfg.Shortener.ResultField == "" {
		cfg.Shortener.ResultField = "shortenedUrl"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	cfg.Redis.Window = normalizeWindow(cfg.Redis.Window)
}

// Validate checks the settings the bot cannot run without.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("TELEGRAM_BOT_TOKEN (bot.token) is required")
	}
	if c.Shortener.BaseURL == "" {
		return errors.New("SHORTENER_BASE_URL (shortener.base_url) is required")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func normalizeWindow(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Minute
	}
	return d
}
