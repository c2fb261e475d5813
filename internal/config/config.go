// Package config loads the waitlist configuration.
//
// Values come from, in increasing precedence: Defaults, a YAML or JSON file, and
// WAITLIST_* environment variables (WAITLIST_STORE_BACKEND for store.backend).
package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WAITLIST_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the complete application configuration.
type Config struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	EncryptionKey string        `mapstructure:"encryption_key"`
	Store         StoreConfig   `mapstructure:"store"`
	Log           LogConfig     `mapstructure:"log"`
	Server        ServerConfig  `mapstructure:"server"`
}

// StoreConfig selects where the registration is persisted.
type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Path    string      `mapstructure:"path"`
	Key     string      `mapstructure:"key"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the local waitlist API.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	Capacity int    `mapstructure:"capacity"`
}

// keys lists every configurable leaf, used for environment overrides.
var keys = []string{
	"endpoint",
	"timeout",
	"encryption_key",
	"store.backend",
	"store.path",
	"store.key",
	"store.redis.addr",
	"store.redis.password",
	"store.redis.db",
	"store.redis.prefix",
	"store.redis.ttl",
	"log.level",
	"log.format",
	"server.addr",
	"server.capacity",
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Endpoint: domain.DefaultEndpoint,
		Timeout:  15 * time.Second,
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    ".waitlist/store",
			Key:     domain.RegistrationEmailKey,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "waitlist:",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads path (optional) and applies environment overrides on top of Defaults.
// A missing file is not an error: the defaults apply.
func Load(path string) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		fileValues, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		raw = fileValues
	}

	applyEnv(raw, os.LookupEnv)

	cfg := Defaults()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	values := map[string]any{}
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return values, nil
}

// EnvName returns the environment variable overriding key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for _, key := range keys {
		v, ok := lookup(EnvName(key))
		if !ok {
			continue
		}
		setPath(raw, strings.Split(key, "."), v)
	}
}

func setPath(m map[string]any, path []string, v any) {
	if len(path) == 1 {
		m[path[0]] = v
		return
	}
	child, ok := m[path[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[path[0]] = child
	}
	setPath(child, path[1:], v)
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks the values that cannot be caught by decoding.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute URL", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file backend")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store.backend %q (want memory, file or redis)", c.Store.Backend)
	}

	if _, err := c.Key(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Server.Capacity < 0 {
		return fmt.Errorf("server.capacity must not be negative")
	}
	return nil
}

// Key decodes the encryption key. It returns nil when encryption is disabled.
func (c Config) Key() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption_key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption_key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
