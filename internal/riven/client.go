package riven

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AquaHorizonGaming/digitarr/internal/release"
)

// BatchResult reports the outcome of a bulk submit. The protocol has no
// partial success: every submitted identifier counts as success or failure
// together.
type BatchResult struct {
	Success int
	Failed  int
	Results []ItemResult
}

// ItemResult carries the diagnostic detail behind a batch outcome.
type ItemResult struct {
	Status  string
	Code    int
	IDs     []string
	Message string
}

// Client submits release batches to a Riven backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

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

// New creates a Riven client. Unlike the Overseerr sink, missing settings do
// not fail construction: the sink simply reports itself disabled.
func New(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Enabled reports whether the sink is active. Enablement is derived, not
// configured: both the endpoint and the credential must be present.
func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.apiKey != ""
}

type addPayload struct {
	MediaType string   `json:"media_type"`
	TMDBIDs   []string `json:"tmdb_ids"`
}

// AddMovies submits the whole batch of identifiers in a single request.
// Large batches are sent unchunked on purpose; splitting them would be a
// behavior change for the backend. AddMovies never returns an error: all
// failure modes are expressed through the BatchResult.
func (c *Client) AddMovies(ctx context.Context, releases []release.Release) BatchResult {
	if !c.Enabled() {
		c.logger.Warn("riven sink not configured, skipping")
		return BatchResult{}
	}

	ids := make([]string, 0, len(releases))
	for _, rel := range releases {
		if rel.TMDBID == 0 {
			continue
		}
		ids = append(ids, strconv.FormatInt(rel.TMDBID, 10))
	}
	if len(ids) == 0 {
		c.logger.Warn("no tmdb ids to submit to riven")
		return BatchResult{Failed: len(releases)}
	}

	body, err := json.Marshal(addPayload{MediaType: release.MediaTypeMovie, TMDBIDs: ids})
	if err != nil {
		return c.allFailed(ids, 0, fmt.Sprintf("encode payload: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/items/add", bytes.NewReader(body))
	if err != nil {
		return c.allFailed(ids, 0, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("riven request failed", "error", err)
		return c.allFailed(ids, 0, err.Error())
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		c.logger.Info("added movies to riven", "count", len(ids))
		return BatchResult{
			Success: len(ids),
			Results: []ItemResult{{Status: "success", IDs: ids}},
		}
	case http.StatusNotFound:
		c.logger.Warn("riven endpoint not found", "status", resp.StatusCode)
		return c.allFailed(ids, resp.StatusCode, "not found")
	case http.StatusUnprocessableEntity:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("riven rejected batch", "status", resp.StatusCode, "body", strings.TrimSpace(string(detail)))
		return c.allFailed(ids, resp.StatusCode, "validation error")
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("riven returned unexpected status",
			"status", resp.StatusCode, "body", strings.TrimSpace(string(detail)))
		return c.allFailed(ids, resp.StatusCode, "")
	}
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("riven sink not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("riven unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("riven unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) allFailed(ids []string, code int, message string) BatchResult {
	return BatchResult{
		Failed:  len(ids),
		Results: []ItemResult{{Status: "error", Code: code, Message: message}},
	}
}
