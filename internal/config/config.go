// Package config holds the application identity and the user editable configuration file.
package config

import (
	"fmt"
	"net"
	"strconv"
)

const (
	// DefaultPort is the port the web server listens on when none is configured
	DefaultPort = 10223

	// DefaultMaxThemeSizeBytes caps the size of an uploaded theme
	DefaultMaxThemeSizeBytes int64 = 1 << 20

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown of the web server
	DefaultShutdownTimeoutSeconds = 10
)

// ServerConfig represents the web server configuration
type ServerConfig struct {
	Host                   string   `yaml:"host"`
	Port                   int      `yaml:"port"`
	CORSAllowedOrigins     []string `yaml:"cors_allowed_origins,omitempty"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds,omitempty"`
}

// Address returns the host:port pair to listen on
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ThemesConfig represents the theme store configuration
type ThemesConfig struct {
	// Directory overrides the default data/themes directory when set
	Directory    string `yaml:"directory,omitempty"`
	MaxSizeBytes int64  `yaml:"max_size_bytes"`
}

// APIKeyConfig grants a set of capabilities to the holder of Key
type APIKeyConfig struct {
	Name         string   `yaml:"name"`
	Key          string   `yaml:"key"`
	Capabilities []string `yaml:"capabilities"`
}

// AuthConfig represents the API authorization configuration
type AuthConfig struct {
	APIKeys               []APIKeyConfig `yaml:"api_keys,omitempty"`
	AnonymousCapabilities []string       `yaml:"anonymous_capabilities,omitempty"`
}

// LogConfig represents the logging configuration
type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// UsageTrackingConfig represents the anonymous usage tracking configuration
type UsageTrackingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config represents the main configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Themes        ThemesConfig        `yaml:"themes"`
	Auth          AuthConfig          `yaml:"auth"`
	Log           LogConfig           `yaml:"log"`
	UsageTracking UsageTrackingConfig `yaml:"usage_tracking"`
}

// Default returns the configuration used when no configuration file exists
func (c Config) Default() Config {
	return Config{
		Server: ServerConfig{
			Host:                   "127.0.0.1",
			Port:                   DefaultPort,
			ShutdownTimeoutSeconds: DefaultShutdownTimeoutSeconds,
		},
		Themes: ThemesConfig{
			MaxSizeBytes: DefaultMaxThemeSizeBytes,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills zero values left by a partial configuration file
func (c *Config) ApplyDefaults() {
	d := c.Default()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = d.Server.ShutdownTimeoutSeconds
	}
	if c.Themes.MaxSizeBytes <= 0 {
		c.Themes.MaxSizeBytes = d.Themes.MaxSizeBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate reports configuration values that cannot work
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	seen := make(map[string]string, len(c.Auth.APIKeys))
	for _, k := range c.Auth.APIKeys {
		if k.Key == "" {
			return fmt.Errorf("api key %q has an empty key", k.Name)
		}
		if other, ok := seen[k.Key]; ok {
			return fmt.Errorf("api keys %q and %q share the same key", other, k.Name)
		}
		seen[k.Key] = k.Name
	}
	return nil
}
