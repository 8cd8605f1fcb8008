package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// Overseerr contains configuration for the Overseerr request sink.
type Overseerr struct {
	APIURL string `toml:"api_url"`
	APIKey string `toml:"api_key"`
}

// Riven contains configuration for the Riven bulk ingest sink. The sink is
// enabled only when both fields are set; there is no separate toggle.
type Riven struct {
	APIURL string `toml:"api_url"`
	APIKey string `toml:"api_key"`
}

// Discord contains configuration for webhook notifications.
type Discord struct {
	WebhookURL string `toml:"webhook_url"`
}

// Filters contains the release filter settings. Zero values disable the
// corresponding filter stage.
type Filters struct {
	ExcludeAdult           bool     `toml:"exclude_adult"`
	MinTMDBRating          float64  `toml:"min_tmdb_rating"`
	AllowedLanguages       []string `toml:"allowed_languages"`
	ExcludedGenres         []string `toml:"excluded_genres"`
	ExcludedCertifications []string `toml:"excluded_certifications"`
}

// HTTP contains settings shared by all outbound HTTP clients.
type HTTP struct {
	RequestTimeout int `toml:"request_timeout"` // seconds
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Paths contains filesystem locations used by the runtime.
type Paths struct {
	LockDir string `toml:"lock_dir"`
}

// Config encapsulates all configuration values for digitarr.
//
// Sections by subsystem:
//   - TMDB: catalog credentials for release discovery
//   - Overseerr: per-title request sink (api_key required)
//   - Riven: bulk ingest sink (disabled unless fully configured)
//   - Discord: webhook notifications (disabled when unset)
//   - Filters: inclusion/exclusion rules applied to discovered releases
//   - HTTP: outbound request timeout
//   - Logging: log format and level
//   - Paths: run lock directory
type Config struct {
	TMDB      TMDB      `toml:"tmdb"`
	Overseerr Overseerr `toml:"overseerr"`
	Riven     Riven     `toml:"riven"`
	Discord   Discord   `toml:"discord"`
	Filters   Filters   `toml:"filters"`
	HTTP      HTTP      `toml:"http"`
	Logging   Logging   `toml:"logging"`
	Paths     Paths     `toml:"paths"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/digitarr/config.toml")
}

// Load locates, parses, and validates a configuration file. Defaults and
// environment fallbacks are applied once here; callers never re-default.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("digitarr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
