// Package config loads the hubmcp configuration from YAML and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the hub settings from the file.
const (
	EnvHubURL   = "HOME_ASSISTANT_API_URL"
	EnvHubToken = "HOME_ASSISTANT_API_TOKEN" //nolint:gosec // variable name, not a secret
)

// Transports accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the top-level configuration.
type Config struct {
	Hub    HubConfig    `yaml:"hub"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// HubConfig describes how to reach the hub's REST API.
type HubConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`   //nolint:gosec // configuration field, not a hardcoded secret
	Timeout string `yaml:"timeout"` // Request timeout as a duration string (e.g. "30s"); empty means none.
}

// ServerConfig describes the MCP server.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"` // "stdio" or "http".
	Addr      string `yaml:"addr"`      // Listen address for the http transport.
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error.
	Format string `yaml:"format"` // text or json.
}

// Default returns a Config with every optional setting filled in.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:      "hubmcp",
			Version:   "0.1.0",
			Transport: TransportStdio,
			Addr:      ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the configuration from the YAML file at path, layered over
// Default and overridden by the hub environment variables. An empty path skips
// the file.
// Environment variables referenced as ${VAR} or $VAR in the YAML are expanded
// before parsing, so the token can stay out of the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
		if err != nil {
			return Config{}, fmt.Errorf("config: load: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse: %w", err)
		}
	}

	if v := os.Getenv(EnvHubURL); v != "" {
		cfg.Hub.BaseURL = v
	}
	if v := os.Getenv(EnvHubToken); v != "" {
		cfg.Hub.Token = v
	}

	return cfg, nil
}

// HubTimeout returns the parsed hub request timeout; zero means none.
func (c Config) HubTimeout() (time.Duration, error) {
	if c.Hub.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Hub.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: hub.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: hub.timeout must not be negative")
	}

	return d, nil
}

// Validate checks that the configuration is complete and consistent.
func (c Config) Validate() error {
	if c.Hub.BaseURL == "" || c.Hub.Token == "" {
		return fmt.Errorf("config: hub base_url and token are required (set %s and %s)", EnvHubURL, EnvHubToken)
	}

	u, err := url.Parse(c.Hub.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: hub.base_url %q must be an absolute http or https URL", c.Hub.BaseURL)
	}

	if _, err := c.HubTimeout(); err != nil {
		return err
	}

	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Addr == "" {
			return fmt.Errorf("config: server.addr is required for the http transport")
		}
	default:
		return fmt.Errorf("config: server.transport %q must be %q or %q", c.Server.Transport, TransportStdio, TransportHTTP)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q must be debug, info, warn, or error", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q must be text or json", c.Log.Format)
	}

	return nil
}
