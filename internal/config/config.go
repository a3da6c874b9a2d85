package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/collatz/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "collatz.yaml"

// Config is the application configuration.
type Config struct {
	Limit    int         `mapstructure:"limit"`
	Guard    int         `mapstructure:"guard"`
	LogLevel string      `mapstructure:"log_level"`
	Serve    ServeConfig `mapstructure:"serve"`
	Redis    RedisConfig `mapstructure:"redis"`
	MCP      MCPConfig   `mapstructure:"mcp"`
}

// ServeConfig configures the stats responder.
type ServeConfig struct {
	Addr      string `mapstructure:"addr"`
	StatePath string `mapstructure:"state_path"`
	StaticDir string `mapstructure:"static_dir"`
}

// RedisConfig selects a Redis-backed state store when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Key      string        `mapstructure:"key"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Limit:    domain.DefaultLimit,
		Guard:    domain.DefaultGuard,
		LogLevel: "info",
		Serve: ServeConfig{
			Addr:      ":8080",
			StatePath: "collatz_state.json",
			StaticDir: "",
		},
		Redis: RedisConfig{
			Key: "collatz:state",
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8081,
		},
	}
}

// Load reads a YAML or JSON file over the defaults.
// An empty path looks up DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	implicit := path == ""
	if implicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if implicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode merges raw values into cfg. Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// StaticRoot is the directory the stats responder serves assets from.
// An unset static_dir means the state file's own directory; with Redis there is none.
func (c Config) StaticRoot() string {
	if c.Serve.StaticDir != "" {
		return c.Serve.StaticDir
	}
	if c.Redis.Addr != "" {
		return ""
	}
	return filepath.Dir(c.Serve.StatePath)
}

// Validate checks the numeric bounds understood by the engine.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("limit %d: %w", c.Limit, domain.ErrInvalidInput)
	}
	if c.Guard < 1 {
		return fmt.Errorf("guard %d: %w", c.Guard, domain.ErrInvalidInput)
	}
	return nil
}
