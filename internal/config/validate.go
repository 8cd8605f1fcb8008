package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateOverseerr(); err != nil {
		return err
	}
	if err := c.validateRiven(); err != nil {
		return err
	}
	if err := c.validateFilters(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/digitarr/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'digitarr config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateOverseerr() error {
	if c.Overseerr.APIURL == "" {
		return errors.New("overseerr.api_url must be set")
	}
	if err := validateURL("overseerr.api_url", c.Overseerr.APIURL); err != nil {
		return err
	}
	if c.Overseerr.APIKey == "" {
		return errors.New("overseerr.api_key is required. Set OVERSEERR_API_KEY env var or add it to the config file")
	}
	return nil
}

func (c *Config) validateRiven() error {
	if c.Riven.APIURL == "" {
		return nil
	}
	return validateURL("riven.api_url", c.Riven.APIURL)
}

func (c *Config) validateFilters() error {
	if c.Filters.MinTMDBRating < 0 || c.Filters.MinTMDBRating > 10 {
		return errors.New("filters.min_tmdb_rating must be between 0 and 10")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}

func validateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if !strings.HasPrefix(parsed.Scheme, "http") || parsed.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	return nil
}
