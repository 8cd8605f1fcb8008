package dispatch

import (
	"context"
	"log/slog"

	"github.com/AquaHorizonGaming/digitarr/internal/overseerr"
	"github.com/AquaHorizonGaming/digitarr/internal/release"
	"github.com/AquaHorizonGaming/digitarr/internal/riven"
)

// Sink names used as keys in the per-release result map.
const (
	SinkOverseerr = "overseerr"
	SinkRiven     = "riven"
)

// Requester submits one release at a time to the user-facing request queue.
type Requester interface {
	Request(ctx context.Context, rel release.Release) overseerr.Outcome
}

// BulkAdder submits a batch of releases to the automated acquisition backend.
type BulkAdder interface {
	Enabled() bool
	AddMovies(ctx context.Context, releases []release.Release) riven.BatchResult
}

// Results maps stringified TMDB ids to per-sink success flags. It is built
// fresh every run and only ever appended to.
type Results map[string]map[string]bool

// Notifiable reports whether at least one sink accepted the release.
func (r Results) Notifiable(key string) bool {
	for _, ok := range r[key] {
		if ok {
			return true
		}
	}
	return false
}

func (r Results) set(key, sink string, ok bool) {
	entry, exists := r[key]
	if !exists {
		entry = make(map[string]bool, 2)
		r[key] = entry
	}
	entry[sink] = ok
}

// Coordinator submits filtered releases to both sinks and reconciles their
// outcomes. The sinks fail independently: a dead Riven backend does not stop
// Overseerr submissions, and vice versa.
type Coordinator struct {
	requester Requester
	bulk      BulkAdder
	logger    *slog.Logger
}

// NewCoordinator creates a dispatch coordinator.
func NewCoordinator(requester Requester, bulk BulkAdder, logger *slog.Logger) *Coordinator {
	return &Coordinator{requester: requester, bulk: bulk, logger: logger}
}

// Dispatch submits every release to the Overseerr sink individually, then
// the whole batch to the Riven sink when it is enabled. Riven has no
// per-item protocol, so its batch outcome fans out to a per-release flag:
// batch success marks every submitted release notifiable through Riven.
func (c *Coordinator) Dispatch(ctx context.Context, releases []release.Release) Results {
	results := make(Results, len(releases))

	for _, rel := range releases {
		outcome := c.requester.Request(ctx, rel)
		results.set(rel.Key(), SinkOverseerr, outcome.Requested)
		if outcome.Skipped {
			c.logger.Debug("overseerr skipped release", "title", rel.Title)
		}
	}

	if c.bulk != nil && c.bulk.Enabled() {
		batch := c.bulk.AddMovies(ctx, releases)
		ok := batch.Success > 0 && batch.Failed == 0
		for _, rel := range releases {
			results.set(rel.Key(), SinkRiven, ok)
		}
		c.logger.Info("riven batch dispatched",
			"success", batch.Success, "failed", batch.Failed)
	}

	return results
}
