// Package config loads the engine's runtime configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

// Config holds the engine's runtime configuration.
type Config struct {
	DBPath       string `json:"db_path"`
	ListenAddr   string `json:"listen_addr"`
	DefaultWorld string `json:"default_world"`
	MaxStates    int    `json:"max_states"`
	LogLevel     string `json:"log_level"`
}

// Load reads a JSON config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = "blocksworld.db"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":9810"
	}
	if c.DefaultWorld == "" {
		c.DefaultWorld = "small"
	}
	if c.MaxStates == 0 {
		c.MaxStates = 20000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	var problems []string

	if c.MaxStates < 0 {
		problems = append(problems, "max_states must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return &domain.EngineError{
			Code:    domain.ErrConfigInvalid.Code,
			Message: fmt.Sprintf("%s: %v", domain.ErrConfigInvalid.Message, problems),
		}
	}
	return nil
}
