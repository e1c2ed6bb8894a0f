// Package config loads and validates the server configuration from a
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr" validate:"required"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// CacheConfig configures the shared image cache.
type CacheConfig struct {
	Backend   string   `yaml:"backend" validate:"oneof=memory redis"`
	TTL       Duration `yaml:"ttl"`
	Prefix    string   `yaml:"prefix"`
	RedisAddr string   `yaml:"redis_addr"`
	RedisDB   int      `yaml:"redis_db" validate:"gte=0"`
}

// ProtectionConfig configures the image URL protection policy.
type ProtectionConfig struct {
	// AllowExternal serves requests without a signed token. Off by
	// default: the endpoint fails closed.
	AllowExternal bool `yaml:"allow_external"`

	// SigningKey signs image URL tokens. Required unless external
	// requests are allowed.
	SigningKey string `yaml:"signing_key" validate:"required_if=AllowExternal false"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Pretty bool   `yaml:"pretty"`
}

// Config is the full server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Cache      CacheConfig      `yaml:"cache"`
	Protection ProtectionConfig `yaml:"protection"`
	Log        LogConfig        `yaml:"log"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       Duration(24 * time.Hour),
			Prefix:    "qrserve",
			RedisAddr: "localhost:6379",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides config values from QRSERVE_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("QRSERVE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("QRSERVE_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("QRSERVE_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("QRSERVE_SIGNING_KEY"); v != "" {
		cfg.Protection.SigningKey = v
	}
	if v := os.Getenv("QRSERVE_ALLOW_EXTERNAL"); v != "" {
		cfg.Protection.AllowExternal = v == "true" || v == "1"
	}
	if v := os.Getenv("QRSERVE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
