package filter

import (
	"log/slog"
	"strings"

	"github.com/AquaHorizonGaming/digitarr/internal/config"
	"github.com/AquaHorizonGaming/digitarr/internal/release"
)

// Apply runs the configured filter stages over releases in a fixed order:
// adult exclusion, minimum rating, allowed languages, excluded genres,
// excluded certifications. Stages whose setting is absent or zero-valued are
// skipped. The result preserves input order and Apply never fails.
func Apply(logger *slog.Logger, releases []release.Release, filters config.Filters) []release.Release {
	filtered := releases
	logger.Info("applying filters", "count", len(filtered))

	if filters.ExcludeAdult {
		filtered = ExcludeAdult(filtered)
		logger.Info("after adult filter", "count", len(filtered))
	}
	if filters.MinTMDBRating > 0 {
		filtered = MinRating(filtered, filters.MinTMDBRating)
		logger.Info("after rating filter", "count", len(filtered))
	}
	if len(filters.AllowedLanguages) > 0 {
		filtered = AllowedLanguages(filtered, filters.AllowedLanguages)
		logger.Info("after language filter", "count", len(filtered))
	}
	if len(filters.ExcludedGenres) > 0 {
		filtered = ExcludedGenres(filtered, filters.ExcludedGenres)
		logger.Info("after genre filter", "count", len(filtered))
	}
	if len(filters.ExcludedCertifications) > 0 {
		filtered = ExcludedCertifications(filtered, filters.ExcludedCertifications)
		logger.Info("after certification filter", "count", len(filtered))
	}

	return filtered
}

// ExcludeAdult drops releases flagged as adult content.
func ExcludeAdult(releases []release.Release) []release.Release {
	return keep(releases, func(r release.Release) bool {
		return !r.Adult
	})
}

// MinRating keeps releases whose vote average meets the threshold. Equality
// passes.
func MinRating(releases []release.Release, minRating float64) []release.Release {
	return keep(releases, func(r release.Release) bool {
		return r.VoteAverage >= minRating
	})
}

// AllowedLanguages keeps only releases whose original language appears in
// allowed. A release with an empty language never matches a non-empty list.
// Callers skip this stage entirely when allowed is empty; an empty allow-list
// means "no restriction", not "restrict to nothing".
func AllowedLanguages(releases []release.Release, allowed []string) []release.Release {
	set := make(map[string]struct{}, len(allowed))
	for _, code := range allowed {
		set[code] = struct{}{}
	}
	return keep(releases, func(r release.Release) bool {
		_, ok := set[r.OriginalLanguage]
		return ok
	})
}

// ExcludedGenres drops releases with any genre on the deny-list. Genre names
// are matched case-insensitively.
func ExcludedGenres(releases []release.Release, excluded []string) []release.Release {
	set := make(map[string]struct{}, len(excluded))
	for _, genre := range excluded {
		set[strings.ToLower(genre)] = struct{}{}
	}
	return keep(releases, func(r release.Release) bool {
		for _, genre := range r.Genres {
			if _, ok := set[strings.ToLower(genre)]; ok {
				return false
			}
		}
		return true
	})
}

// ExcludedCertifications drops releases whose certification is on the
// deny-list, matched case-insensitively. An empty certification never
// matches.
func ExcludedCertifications(releases []release.Release, excluded []string) []release.Release {
	set := make(map[string]struct{}, len(excluded))
	for _, cert := range excluded {
		set[strings.ToUpper(cert)] = struct{}{}
	}
	return keep(releases, func(r release.Release) bool {
		if r.Certification == "" {
			return true
		}
		_, ok := set[strings.ToUpper(r.Certification)]
		return !ok
	})
}

func keep(releases []release.Release, pred func(release.Release) bool) []release.Release {
	filtered := make([]release.Release, 0, len(releases))
	for _, r := range releases {
		if pred(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
