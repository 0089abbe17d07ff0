// Package config loads the TOML configuration for the surfrank server.
//
// The configuration file is optional - [Default] describes a fully
// working single-instance setup. A minimal file looks like:
//
//	[server]
//	addr = ":5000"
//	session_ttl = "24h"
//
//	[redis]
//	enabled = true
//	addr = "localhost:6379"
//
// When [redis].enabled is false the server keeps sessions in process
// memory, matching the original single-instance behavior.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
}

// ServerConfig configures the HTTP listener and session lifecycle.
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	SessionTTL duration `toml:"session_ttl"`
}

// RedisConfig configures the optional Redis session backend.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// duration wraps time.Duration for TOML string decoding ("24h", "90m").
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file is given:
// listen on :5000 (the original app's port) with in-memory sessions.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:       ":5000",
			SessionTTL: duration{24 * time.Hour},
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load reads a TOML config file, applying [Default] for absent fields.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.SessionTTL.Duration <= 0 {
		return fmt.Errorf("server.session_ttl must be positive, got %s", c.Server.SessionTTL.Duration)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr must be set when redis is enabled")
	}
	return nil
}

// TTL returns the configured session TTL.
func (c Config) TTL() time.Duration { return c.Server.SessionTTL.Duration }
