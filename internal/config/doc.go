// Package config loads and validates the TOML configuration file.
//
// Defaulting, environment fallbacks, and normalization all happen once in
// Load; the rest of the codebase consumes the resulting Config verbatim and
// never applies its own defaults.
package config
