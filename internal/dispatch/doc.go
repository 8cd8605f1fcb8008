// Package dispatch drives filtered releases through the acquisition sinks
// and aggregates per-release, per-sink outcomes into the result map the
// notifier consumes.
package dispatch
