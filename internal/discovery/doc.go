// Package discovery turns raw TMDB payloads into canonical release records.
//
// A movie can carry several country-specific digital release entries with
// partial or conflicting date and certification fields; the checker applies
// a deterministic tie-break so every run resolves the same record from the
// same upstream data.
package discovery
