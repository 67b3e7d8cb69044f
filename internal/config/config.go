// Package config provides configuration loading for projectdeck.
//
// Configuration is layered: defaults, then an optional YAML file, then
// environment variables (optionally seeded from a .env file).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/fyrsmithlabs/projectdeck/internal/logging"
	"github.com/fyrsmithlabs/projectdeck/internal/telemetry"
)

// Config holds the complete projectdeck configuration.
type Config struct {
	Remote    RemoteConfig      `koanf:"remote"`
	Console   ConsoleConfig     `koanf:"console"`
	Notify    NotifyConfig      `koanf:"notify"`
	Watch     WatchConfig       `koanf:"watch"`
	Reload    ReloadConfig      `koanf:"reload"`
	Logging   *logging.Config   `koanf:"logging"`
	Telemetry *telemetry.Config `koanf:"telemetry"`
}

// RemoteConfig describes the remote project service.
type RemoteConfig struct {
	BaseURL   string  `koanf:"base_url"`
	RateLimit float64 `koanf:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int     `koanf:"burst"`
}

// ConsoleConfig holds the web console listener configuration.
type ConsoleConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// NotifyConfig controls transient user feedback.
type NotifyConfig struct {
	Duration Duration `koanf:"duration"`
}

// WatchConfig controls the terminal live view.
type WatchConfig struct {
	Interval Duration `koanf:"interval"`
}

// ReloadConfig controls list reconciliation.
type ReloadConfig struct {
	// Ordered drops list responses that arrive after a newer one was applied.
	// Off by default: overlapping reloads resolve last-response-wins.
	Ordered bool `koanf:"ordered"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:   "http://localhost:5000",
			RateLimit: 0,
			Burst:     1,
		},
		Console: ConsoleConfig{
			Host:            "localhost",
			Port:            8088,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Notify: NotifyConfig{
			Duration: Duration(5 * time.Second),
		},
		Watch: WatchConfig{
			Interval: Duration(5 * time.Second),
		},
		Logging:   logging.NewDefaultConfig(),
		Telemetry: telemetry.NewDefaultConfig(),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Remote.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid remote base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("remote base URL must be http or https, got %q", c.Remote.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("remote base URL has no host: %q", c.Remote.BaseURL)
	}
	if c.Remote.RateLimit < 0 {
		return errors.New("remote rate limit cannot be negative")
	}
	if c.Remote.RateLimit > 0 && c.Remote.Burst < 1 {
		return errors.New("remote burst must be at least 1 when rate limiting")
	}

	if c.Console.Port < 1 || c.Console.Port > 65535 {
		return fmt.Errorf("invalid console port: %d (must be 1-65535)", c.Console.Port)
	}
	if c.Console.ShutdownTimeout.Duration() <= 0 {
		return errors.New("console shutdown timeout must be positive")
	}

	if c.Notify.Duration.Duration() <= 0 {
		return errors.New("notify duration must be positive")
	}
	if c.Watch.Interval.Duration() <= 0 {
		return errors.New("watch interval must be positive")
	}

	if c.Logging == nil {
		return errors.New("logging config is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}

	if c.Telemetry != nil {
		if err := c.Telemetry.Validate(); err != nil {
			return fmt.Errorf("invalid telemetry config: %w", err)
		}
	}

	return nil
}
