package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/AquaHorizonGaming/digitarr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a valid config seeded with test credentials and a
// per-test lock directory. Options are applied last.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.TMDB.APIKey = "test-tmdb-key"
	cfg.Overseerr.APIKey = "test-overseerr-key"
	cfg.Paths.LockDir = filepath.Join(t.TempDir(), "locks")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithOverseerr points the Overseerr sink at the given backend.
func WithOverseerr(apiURL, apiKey string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Overseerr.APIURL = apiURL
		cfg.Overseerr.APIKey = apiKey
	}
}

// WithRiven enables the Riven sink against the given backend.
func WithRiven(apiURL, apiKey string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Riven.APIURL = apiURL
		cfg.Riven.APIKey = apiKey
	}
}

// WithDiscord enables Discord notifications against the given webhook.
func WithDiscord(webhookURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Discord.WebhookURL = webhookURL
	}
}
