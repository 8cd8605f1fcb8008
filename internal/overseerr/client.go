package overseerr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AquaHorizonGaming/digitarr/internal/release"
)

// Media status ordinals reported by the Overseerr movie endpoint. Anything
// at StatusPending or beyond means the title is already in flight.
const (
	StatusUnknown            = 1
	StatusPending            = 2
	StatusProcessing         = 3
	StatusPartiallyAvailable = 4
	StatusAvailable          = 5
)

// Outcome is the per-release result of a submit attempt. Requested is the
// success flag consumed by the dispatch coordinator; Skipped marks the
// already-pending short circuit, which is reported as a non-success but is
// not an error.
type Outcome struct {
	Requested bool
	Skipped   bool
	Status    int
	Message   string
}

// Client submits individual releases to the Overseerr request queue.
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

// New creates an Overseerr client. A missing API key is a configuration
// fault and fails immediately.
func New(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("overseerr api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("overseerr api url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type requestPayload struct {
	MediaID   int64  `json:"mediaId"`
	MediaType string `json:"mediaType"`
}

type movieStatusResponse struct {
	MediaInfo struct {
		Status int `json:"status"`
	} `json:"mediaInfo"`
}

// Request submits a single release to the request queue. It never returns an
// error: every failure mode is folded into the Outcome so the caller can
// keep driving the batch. A 409 from the backend counts as success since the
// desired end state already holds.
func (c *Client) Request(ctx context.Context, rel release.Release) Outcome {
	if rel.TMDBID == 0 {
		c.logger.Warn("cannot request release without tmdb id", "title", rel.Title)
		return Outcome{Message: "missing tmdb id"}
	}

	if c.alreadyRequested(ctx, rel.TMDBID) {
		c.logger.Info("already requested or available, skipping", "title", rel.Title)
		return Outcome{Skipped: true}
	}

	body, err := json.Marshal(requestPayload{MediaID: rel.TMDBID, MediaType: rel.MediaType})
	if err != nil {
		return Outcome{Message: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/request", bytes.NewReader(body))
	if err != nil {
		return Outcome{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("overseerr request failed", "title", rel.Title, "error", err)
		return Outcome{Message: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		c.logger.Info("added to overseerr request list", "title", rel.Title)
		return Outcome{Requested: true}
	case http.StatusConflict:
		c.logger.Info("already exists in overseerr", "title", rel.Title)
		return Outcome{Requested: true}
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		message := strings.TrimSpace(string(detail))
		c.logger.Error("overseerr rejected request",
			"title", rel.Title, "status", resp.StatusCode, "body", message)
		return Outcome{Status: resp.StatusCode, Message: message}
	}
}

// alreadyRequested probes the media status endpoint. Probe failures are
// treated as "not requested" so a flaky status check cannot block a submit.
func (c *Client) alreadyRequested(ctx context.Context, tmdbID int64) bool {
	endpoint := fmt.Sprintf("%s/api/v1/movie/%d", c.baseURL, tmdbID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("overseerr status check failed", "tmdb_id", tmdbID, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var payload movieStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("decode overseerr status response", "tmdb_id", tmdbID, "error", err)
		return false
	}
	return payload.MediaInfo.Status >= StatusPending
}
