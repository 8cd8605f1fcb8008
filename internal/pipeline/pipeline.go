package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AquaHorizonGaming/digitarr/internal/config"
	"github.com/AquaHorizonGaming/digitarr/internal/discovery"
	"github.com/AquaHorizonGaming/digitarr/internal/dispatch"
	"github.com/AquaHorizonGaming/digitarr/internal/filter"
	"github.com/AquaHorizonGaming/digitarr/internal/notify"
	"github.com/AquaHorizonGaming/digitarr/internal/overseerr"
	"github.com/AquaHorizonGaming/digitarr/internal/release"
	"github.com/AquaHorizonGaming/digitarr/internal/riven"
	"github.com/AquaHorizonGaming/digitarr/internal/tmdb"
)

// Summary captures what a run did, for logging and CLI rendering.
type Summary struct {
	RunID    string
	Found    int
	Filtered int
	Accepted int
	Notified int
	Duration time.Duration
	Releases []release.Release
	Results  dispatch.Results
}

// Pipeline wires the release checker, filter chain, dispatch coordinator,
// and notifier into a single run-to-completion unit.
type Pipeline struct {
	cfg         *config.Config
	checker     *discovery.Checker
	coordinator *dispatch.Coordinator
	notifier    notify.Service
	logger      *slog.Logger
}

// New constructs the full pipeline from configuration. Construction is the
// only place a configuration fault can surface; once New succeeds, a run
// degrades to doing less work instead of failing.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTP.RequestTimeout) * time.Second}

	catalog, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("tmdb client: %w", err)
	}

	requester, err := overseerr.New(cfg.Overseerr.APIURL, cfg.Overseerr.APIKey, logger,
		overseerr.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("overseerr client: %w", err)
	}

	bulk := riven.New(cfg.Riven.APIURL, cfg.Riven.APIKey, logger,
		riven.WithHTTPClient(httpClient))

	return &Pipeline{
		cfg:         cfg,
		checker:     discovery.NewChecker(catalog, logger),
		coordinator: dispatch.NewCoordinator(requester, bulk, logger),
		notifier:    notify.NewService(cfg.Discord.WebhookURL, logger, notify.WithHTTPClient(httpClient)),
		logger:      logger,
	}, nil
}

// Run executes one discover-filter-dispatch-notify cycle and returns its
// summary. Past construction there is no fatal path: an unreachable upstream
// yields a run that processed zero releases, with the log trail explaining
// why.
func (p *Pipeline) Run(ctx context.Context) Summary {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	start := time.Now()

	logger.Info("run started")

	found := p.checker.TodayReleases(ctx)
	filtered := filter.Apply(logger, found, p.cfg.Filters)
	results := p.coordinator.Dispatch(ctx, filtered)

	accepted := 0
	for _, rel := range filtered {
		if results.Notifiable(rel.Key()) {
			accepted++
		}
	}

	notified := p.notifier.ReleaseNotifications(ctx, filtered, results)

	summary := Summary{
		RunID:    runID,
		Found:    len(found),
		Filtered: len(filtered),
		Accepted: accepted,
		Notified: notified,
		Duration: time.Since(start),
		Releases: filtered,
		Results:  results,
	}

	logger.Info("run complete",
		"found", summary.Found,
		"filtered", summary.Filtered,
		"accepted", summary.Accepted,
		"notified", summary.Notified,
		"duration", summary.Duration.Round(time.Millisecond))
	return summary
}
