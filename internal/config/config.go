// Package config loads claro settings from defaults, TOML files and the
// environment. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/clarolist/internal/store/jsonstore"
)

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the resolved configuration.
type Config struct {
	DataFile  string      `toml:"data_file"`
	Backend   string      `toml:"backend"`
	Redis     RedisConfig `toml:"redis"`
	LogLevel  string      `toml:"log_level"`
	LogFormat string      `toml:"log_format"`
	Theme     string      `toml:"theme"`
	NoColor   bool        `toml:"no_color"`
}

// RedisConfig selects the redis instance holding the document.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	cfg := &Config{
		Backend:   BackendFile,
		LogLevel:  "warn",
		LogFormat: "text",
		Theme:     "classic",
		Redis: RedisConfig{
			Addr: "localhost:6379",
			Key:  jsonstore.DefaultRedisKey,
		},
	}
	if p, err := jsonstore.DefaultPath(); err == nil {
		cfg.DataFile = p
	}
	return cfg
}

// UserConfigPath is where the per-user config file lives.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "claro", "config.toml")
}

// Load resolves configuration in order: defaults, the user config file
// when present, the explicit file (which must exist) when path is set,
// then CLARO_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if user := UserConfigPath(); user != "" {
		if err := loadFile(cfg, user); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading user config file %s: %w", user, err)
		}
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CLARO_DATA"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("CLARO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("CLARO_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("CLARO_REDIS_KEY"); v != "" {
		cfg.Redis.Key = v
	}
	if v := os.Getenv("CLARO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CLARO_THEME"); v != "" {
		cfg.Theme = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendFile:
		if strings.TrimSpace(c.DataFile) == "" {
			return fmt.Errorf("data_file is empty")
		}
	case BackendRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("redis.addr is empty")
		}
	default:
		return fmt.Errorf("unknown backend %q: must be %s or %s", c.Backend, BackendFile, BackendRedis)
	}
	return nil
}
