package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App     App     `yaml:"app"`
	HTTP    HTTP    `yaml:"http"`
	Backend Backend `yaml:"backend"`
	Session Session `yaml:"session"`
	Booking Booking `yaml:"booking"`
}

type App struct {
	Name    string `yaml:"name" env:"APP_NAME" env-default:"flyhigh-web"`
	Version string `yaml:"version" env:"APP_VERSION" env-default:"1.0.0"`
}

type HTTP struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
}

type Backend struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://127.0.0.1:8000"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"15s"`
}

type Session struct {
	TTL time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	// RedisAddr switches the session store from in-memory to Redis
	// when set.
	RedisAddr string `yaml:"redis_addr" env:"SESSION_REDIS_ADDR" env-default:""`
}

type Booking struct {
	// DraftTTL bounds how long an unfinished booking draft is kept.
	DraftTTL time.Duration `yaml:"draft_ttl" env:"BOOKING_DRAFT_TTL" env-default:"1h"`
}

func New() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		// fallback to env vars if file not found
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else {
		// Allow env vars to override config file
		cleanenv.ReadEnv(cfg)
	}

	return cfg, nil
}
