package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	c.normalizeOverseerr()
	c.normalizeRiven()
	c.normalizeDiscord()
	if err := c.normalizeFilters(); err != nil {
		return err
	}
	c.normalizeHTTP()
	c.normalizeLogging()
	return c.normalizePaths()
}

func (c *Config) normalizeTMDB() error {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.BaseURL = strings.TrimRight(c.TMDB.BaseURL, "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	return nil
}

func (c *Config) normalizeOverseerr() {
	c.Overseerr.APIURL = strings.TrimRight(strings.TrimSpace(c.Overseerr.APIURL), "/")
	c.Overseerr.APIKey = strings.TrimSpace(c.Overseerr.APIKey)
	if c.Overseerr.APIKey == "" {
		if value, ok := os.LookupEnv("OVERSEERR_API_KEY"); ok {
			c.Overseerr.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeRiven() {
	c.Riven.APIURL = strings.TrimRight(strings.TrimSpace(c.Riven.APIURL), "/")
	c.Riven.APIKey = strings.TrimSpace(c.Riven.APIKey)
	if c.Riven.APIKey == "" {
		if value, ok := os.LookupEnv("RIVEN_API_KEY"); ok {
			c.Riven.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeDiscord() {
	c.Discord.WebhookURL = strings.TrimSpace(c.Discord.WebhookURL)
	if c.Discord.WebhookURL == "" {
		if value, ok := os.LookupEnv("DISCORD_WEBHOOK_URL"); ok {
			c.Discord.WebhookURL = strings.TrimSpace(value)
		}
	}
}

// normalizeFilters canonicalizes the allowed-language codes to ISO 639-1 so
// the filter can compare them byte-for-byte against TMDB's original_language
// field. Unrecognized codes are a configuration mistake and rejected here.
func (c *Config) normalizeFilters() error {
	if len(c.Filters.AllowedLanguages) > 0 {
		codes := make([]string, 0, len(c.Filters.AllowedLanguages))
		seen := make(map[string]struct{}, len(c.Filters.AllowedLanguages))
		for _, code := range c.Filters.AllowedLanguages {
			trimmed := strings.TrimSpace(code)
			if trimmed == "" {
				continue
			}
			tag, err := language.Parse(trimmed)
			if err != nil {
				return fmt.Errorf("filters.allowed_languages: unrecognized code %q: %w", code, err)
			}
			base, _ := tag.Base()
			normalized := base.String()
			if _, exists := seen[normalized]; exists {
				continue
			}
			seen[normalized] = struct{}{}
			codes = append(codes, normalized)
		}
		c.Filters.AllowedLanguages = codes
	}

	c.Filters.ExcludedGenres = trimNonEmpty(c.Filters.ExcludedGenres)
	c.Filters.ExcludedCertifications = trimNonEmpty(c.Filters.ExcludedCertifications)
	return nil
}

func (c *Config) normalizeHTTP() {
	if c.HTTP.RequestTimeout <= 0 {
		c.HTTP.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LockDir) == "" {
		c.Paths.LockDir = defaultLockDir
	}
	expanded, err := expandPath(c.Paths.LockDir)
	if err != nil {
		return fmt.Errorf("paths.lock_dir: %w", err)
	}
	c.Paths.LockDir = expanded
	return nil
}

func trimNonEmpty(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
