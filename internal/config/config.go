// Package config loads server settings from a yaml file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds the server settings.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`
	// FrontendHost restricts websocket origins; empty allows every origin.
	FrontendHost string `yaml:"frontend_host"`
	// HeartbeatSeconds is the SSE keep-alive interval.
	HeartbeatSeconds int `yaml:"heartbeat_seconds"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		Port:             "8080",
		HeartbeatSeconds: 15,
	}
}

// Load reads a yaml config file, filling unset fields with defaults. An
// empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Port == "" {
		cfg.Port = Default().Port
	}
	if cfg.HeartbeatSeconds <= 0 {
		cfg.HeartbeatSeconds = Default().HeartbeatSeconds
	}
	return cfg, nil
}

// Heartbeat returns the SSE keep-alive interval as a duration.
func (c Config) Heartbeat() time.Duration {
	return time.Duration(c.HeartbeatSeconds) * time.Second
}
