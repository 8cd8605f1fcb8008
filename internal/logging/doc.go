// Package logging builds the slog loggers used across the pipeline. Two
// output formats are supported: a human-readable console format for
// interactive use and JSON for log collection from cron runs.
package logging
