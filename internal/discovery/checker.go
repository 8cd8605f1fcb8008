package discovery

import (
	"context"
	"log/slog"
	"time"

	"github.com/AquaHorizonGaming/digitarr/internal/release"
	"github.com/AquaHorizonGaming/digitarr/internal/tmdb"
)

const dateLayout = "2006-01-02"

// Checker resolves today's digital movie releases from the catalog.
type Checker struct {
	catalog tmdb.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock overrides the time source used to compute "today".
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.now = now
		}
	}
}

// NewChecker creates a release checker backed by the supplied catalog.
func NewChecker(catalog tmdb.Catalog, logger *slog.Logger, opts ...Option) *Checker {
	checker := &Checker{
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(checker)
	}
	return checker
}

// TodayReleases returns the releases whose digital window matches today.
// It fails soft: catalog errors are logged and yield an empty slice, and a
// movie whose detail lookup fails is dropped without aborting the batch.
// Callers cannot distinguish "nothing released" from "catalog unreachable".
func (c *Checker) TodayReleases(ctx context.Context) []release.Release {
	date := c.now().Format(dateLayout)

	resp, err := c.catalog.DiscoverDigital(ctx, date)
	if err != nil {
		c.logger.Error("discover digital releases failed", "date", date, "error", err)
		return nil
	}

	releases := make([]release.Release, 0, len(resp.Results))
	for _, candidate := range resp.Results {
		movie, err := c.catalog.MovieDetails(ctx, candidate.ID)
		if err != nil {
			c.logger.Warn("skipping release, detail lookup failed",
				"tmdb_id", candidate.ID, "title", candidate.Title, "error", err)
			continue
		}
		releases = append(releases, buildRelease(movie))
	}

	c.logger.Info("digital releases found", "date", date, "count", len(releases))
	return releases
}

func buildRelease(movie *tmdb.Movie) release.Release {
	date, certification := resolveDigital(movie.ReleaseDates.Results)
	if date == "" {
		date = movie.ReleaseDate
	}
	overview := movie.Overview
	if overview == "" {
		overview = release.FallbackOverview
	}
	genres := make([]string, 0, len(movie.Genres))
	for _, genre := range movie.Genres {
		genres = append(genres, genre.Name)
	}
	return release.Release{
		MediaType:        release.MediaTypeMovie,
		TMDBID:           movie.ID,
		Title:            movie.Title,
		Overview:         overview,
		ReleaseDate:      date,
		VoteAverage:      movie.VoteAverage,
		Popularity:       movie.Popularity,
		Adult:            movie.Adult,
		PosterPath:       movie.PosterPath,
		OriginalLanguage: movie.OriginalLanguage,
		Genres:           genres,
		Certification:    certification,
	}
}

// resolveDigital scans country entries in catalog order and picks the winning
// digital release date and certification. The first non-empty digital date
// wins. A US certification always overwrites an earlier pick; any other
// country only fills an empty slot.
func resolveDigital(entries []tmdb.CountryReleases) (date, certification string) {
	for _, country := range entries {
		for _, entry := range country.ReleaseDates {
			if entry.Type != tmdb.ReleaseTypeDigital {
				continue
			}
			if date == "" && entry.ReleaseDate != "" {
				date = entry.ReleaseDate
				if len(date) > len(dateLayout) {
					date = date[:len(dateLayout)]
				}
			}
			if entry.Certification != "" {
				if country.CountryCode == "US" {
					certification = entry.Certification
				} else if certification == "" {
					certification = entry.Certification
				}
			}
		}
	}
	return date, certification
}
