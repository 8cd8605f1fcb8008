package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Release type codes used by the TMDB release_dates endpoint.
const (
	ReleaseTypePremiere          = 1
	ReleaseTypeTheatricalLimited = 2
	ReleaseTypeTheatrical        = 3
	ReleaseTypeDigital           = 4
	ReleaseTypePhysical          = 5
	ReleaseTypeTV                = 6
)

// DiscoverResult is a single candidate from the discover endpoint.
type DiscoverResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	Adult            bool    `json:"adult"`
	PosterPath       string  `json:"poster_path"`
	OriginalLanguage string  `json:"original_language"`
}

// DiscoverResponse models the paginated discover payload.
type DiscoverResponse struct {
	Page         int              `json:"page"`
	Results      []DiscoverResult `json:"results"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
}

// Genre is a TMDB genre entry on a movie detail record.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CountryRelease is one dated release entry within a country block.
type CountryRelease struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
}

// CountryReleases groups release entries by ISO 3166-1 country code.
type CountryReleases struct {
	CountryCode  string           `json:"iso_3166_1"`
	ReleaseDates []CountryRelease `json:"release_dates"`
}

// ReleaseDates is the appended release_dates expansion on a movie detail.
type ReleaseDates struct {
	Results []CountryReleases `json:"results"`
}

// Movie is the detail record for a single title, with release dates appended.
type Movie struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	Overview         string       `json:"overview"`
	ReleaseDate      string       `json:"release_date"`
	IMDBID           string       `json:"imdb_id"`
	VoteAverage      float64      `json:"vote_average"`
	Popularity       float64      `json:"popularity"`
	Adult            bool         `json:"adult"`
	PosterPath       string       `json:"poster_path"`
	OriginalLanguage string       `json:"original_language"`
	Genres           []Genre      `json:"genres"`
	ReleaseDates     ReleaseDates `json:"release_dates"`
}

// Catalog defines the TMDB operations the discovery checker depends on.
type Catalog interface {
	DiscoverDigital(ctx context.Context, date string) (*DiscoverResponse, error)
	MovieDetails(ctx context.Context, movieID int64) (*Movie, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// DiscoverDigital queries the discover endpoint for movies whose digital
// release window matches date exactly (YYYY-MM-DD on both bounds), sorted by
// descending popularity. Only the first page is fetched.
func (c *Client) DiscoverDigital(ctx context.Context, date string) (*DiscoverResponse, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, errors.New("date must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/discover/movie")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("with_release_type", strconv.Itoa(ReleaseTypeDigital))
	params.Set("release_date.gte", date)
	params.Set("release_date.lte", date)
	params.Set("sort_by", "popularity.desc")
	params.Set("page", "1")
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload DiscoverResponse
	if err := c.get(ctx, endpoint.String(), &payload); err != nil {
		return nil, fmt.Errorf("tmdb discover: %w", err)
	}
	return &payload, nil
}

// MovieDetails fetches the detail record for a single movie with the
// release_dates expansion appended.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*Movie, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/movie/%d", c.baseURL, movieID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("append_to_response", "release_dates")
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload Movie
	if err := c.get(ctx, endpoint.String(), &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie %d: %w", movieID, err)
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
