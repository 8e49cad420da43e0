// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"users-table/internal/fetcher"
)

// Config 服務設定，全部來自環境變數
type Config struct {
	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":8080"`
	UsersURL     string        `env:"USERS_URL" envDefault:"https://jsonplaceholder.typicode.com/users"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	PollTimeout  time.Duration `env:"POLL_TIMEOUT" envDefault:"15s"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SortLocale   string        `env:"SORT_LOCALE" envDefault:"en"`
	WorkerCount  int           `env:"WORKER_COUNT" envDefault:"2"`

	// Redis 為選用；未設定 REDIS_ADDR 時使用記憶體 session store
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	Debug bool `env:"DEBUG" envDefault:"false"`

	// Locale is SortLocale parsed by Load.
	Locale language.Tag `env:"-"`
}

var (
	defaultLoadDotEnv = func() error { return godotenv.Load() }
	loadDotEnv        = defaultLoadDotEnv
)

// Load 讀取 .env (若存在) 後解析環境變數
func Load() (Config, error) {
	_ = loadDotEnv()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	tag, err := language.Parse(cfg.SortLocale)
	if err != nil {
		return Config{}, fmt.Errorf("無效的 SORT_LOCALE: %w", err)
	}
	cfg.Locale = tag
	if cfg.UsersURL == "" {
		cfg.UsersURL = fetcher.DefaultURL
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("無效的 WORKER_COUNT: %d", c.WorkerCount))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("無效的 FETCH_TIMEOUT: %s", c.FetchTimeout))
	}
	if c.PollTimeout <= 0 {
		errs = append(errs, fmt.Errorf("無效的 POLL_TIMEOUT: %s", c.PollTimeout))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("無效的 SESSION_TTL: %s", c.SessionTTL))
	}
	if c.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("無效的 REDIS_DB: %d", c.RedisDB))
	}
	return errors.Join(errs...)
}

// UseRedis 是否使用 Redis 作為 session store
func (c Config) UseRedis() bool {
	return c.RedisAddr != ""
}
