package release

import "strconv"

// MediaTypeMovie is the only media type the pipeline currently handles. The
// tag is carried on every record so downstream payloads can name it
// explicitly.
const MediaTypeMovie = "movie"

// FallbackOverview substitutes for titles TMDB has no synopsis for.
const FallbackOverview = "No description available."

// Release is the canonical record flowing through the pipeline. It is built
// once at the catalog boundary and never mutated afterwards; filter stages
// drop records, they do not rewrite them.
type Release struct {
	MediaType        string
	TMDBID           int64
	Title            string
	Overview         string
	ReleaseDate      string // YYYY-MM-DD
	VoteAverage      float64
	Popularity       float64
	Adult            bool
	PosterPath       string
	OriginalLanguage string // ISO 639-1, may be empty
	Genres           []string
	Certification    string // age rating, may be empty
}

// Key returns the stringified TMDB identifier used to join per-sink outcomes
// across the dispatch result map.
func (r Release) Key() string {
	return strconv.FormatInt(r.TMDBID, 10)
}
