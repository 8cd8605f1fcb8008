// Package riven submits batches of TMDB identifiers to a Riven acquisition
// backend in a single request. The sink is all-or-nothing: the backend
// offers no per-item result, so the whole batch succeeds or fails together.
package riven
