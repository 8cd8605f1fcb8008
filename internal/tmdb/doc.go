// Package tmdb implements a minimal client for The Movie Database API
// covering the two calls the release checker needs: digital-release
// discovery and per-movie detail lookups with release dates appended.
package tmdb
