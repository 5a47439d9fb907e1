package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderSQLite, ProviderDemo:
	default:
		return fmt.Errorf("provider must be %q or %q, got %q", ProviderSQLite, ProviderDemo, c.Provider)
	}
	if err := c.validateCloud(); err != nil {
		return err
	}
	if c.Player.PollInterval < 0 {
		return errors.New("player.poll_interval must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateCloud() error {
	if c.Cloud.SaveTimeout < 0 {
		return errors.New("cloud.save_timeout must be positive")
	}
	if c.Cloud.BaseURL != "" {
		u, err := url.Parse(c.Cloud.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("cloud.base_url must be an absolute URL, got %q", c.Cloud.BaseURL)
		}
	}
	if _, err := url.Parse(c.Cloud.ShareBaseURL); err != nil {
		return fmt.Errorf("cloud.share_base_url: %w", err)
	}
	return nil
}
