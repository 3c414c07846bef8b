// Package config loads pigeon CLI settings from the environment and reads
// batch request files.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/pfrederiksen/pigeon-go/pigeon"
)

// Config holds all CLI configuration loaded from environment variables.
type Config struct {
	// Token authenticates against the Pigeon API.
	Token string `envconfig:"PIGEON_TOKEN" required:"true"`

	// Host is the API base URL. Defaults to pigeon.DefaultHost.
	Host string `envconfig:"PIGEON_HOST"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `envconfig:"PIGEON_TIMEOUT" default:"30s"`

	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is text or json.
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads Config from environment variables using envconfig.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.Host == "" {
		c.Host = pigeon.DefaultHost
	}
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("loading config: PIGEON_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return &c, nil
}

// Client returns the pigeon client configuration.
func (c *Config) Client() pigeon.Config {
	return pigeon.Config{Token: c.Token, Host: c.Host}
}
