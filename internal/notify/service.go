package notify

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

	"github.com/AquaHorizonGaming/digitarr/internal/dispatch"
	"github.com/AquaHorizonGaming/digitarr/internal/release"
)

const (
	imageBaseURL = "https://image.tmdb.org/t/p/w500"
	footerText   = "Digitarr - Digital Movie Release Checker"
	colorGreen   = 0x00FF00

	// Discord rate limits webhook deliveries to roughly one per second.
	// The delay sits on the critical path and dominates wall-clock time
	// when many releases notify.
	rateLimitDelay = time.Second

	maxOverviewRunes = 200
)

// ErrDisabled is returned by Test when no webhook is configured.
var ErrDisabled = errors.New("discord notifications disabled")

// Service delivers per-release notifications to end users.
type Service interface {
	Enabled() bool
	ReleaseNotifications(ctx context.Context, releases []release.Release, results dispatch.Results) int
	Test(ctx context.Context) error
}

// Option configures the webhook service.
type Option func(*webhookService)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *webhookService) {
		if client != nil {
			s.client = client
		}
	}
}

// WithSleep overrides the rate-limit sleep. Intended for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *webhookService) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// NewService builds a notification service backed by a Discord webhook.
// When no webhook URL is configured, a noop implementation is returned and
// the rest of the pipeline runs unchanged.
func NewService(webhookURL string, logger *slog.Logger, opts ...Option) Service {
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		return noopService{}
	}
	service := &webhookService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		sleep:      time.Sleep,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

type embed struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Color       int             `json:"color"`
	Fields      []embedField    `json:"fields,omitempty"`
	Footer      *embedFooter    `json:"footer,omitempty"`
	Timestamp   string          `json:"timestamp"`
	Thumbnail   *embedThumbnail `json:"thumbnail,omitempty"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type webhookService struct {
	webhookURL string
	client     *http.Client
	logger     *slog.Logger
	sleep      func(time.Duration)
	now        func() time.Time
}

func (s *webhookService) Enabled() bool { return true }

// ReleaseNotifications sends one embed per notifiable release and returns
// the number delivered. A release is notifiable when at least one sink
// accepted it. Delivery failures are logged and skipped; the batch always
// runs to completion.
func (s *webhookService) ReleaseNotifications(ctx context.Context, releases []release.Release, results dispatch.Results) int {
	sent := 0
	for _, rel := range releases {
		if !results.Notifiable(rel.Key()) {
			continue
		}
		if s.send(ctx, s.releaseEmbed(rel, results[rel.Key()])) {
			sent++
		} else {
			s.logger.Error("discord notification failed", "title", rel.Title)
		}
		s.sleep(rateLimitDelay)
	}
	s.logger.Info("discord notifications sent", "count", sent)
	return sent
}

// Test delivers a small embed confirming the webhook works.
func (s *webhookService) Test(ctx context.Context) error {
	data := embed{
		Title:       "🔔 Digitarr Test",
		Description: "Discord webhook is configured correctly!",
		Color:       colorGreen,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
	}
	if !s.send(ctx, data) {
		return errors.New("discord webhook test failed")
	}
	return nil
}

func (s *webhookService) releaseEmbed(rel release.Release, sinks map[string]bool) embed {
	addedTo := make([]string, 0, 2)
	if sinks[dispatch.SinkOverseerr] {
		addedTo = append(addedTo, "Overseerr")
	}
	if sinks[dispatch.SinkRiven] {
		addedTo = append(addedTo, "Riven")
	}

	data := embed{
		Title:       fmt.Sprintf("🎬 %s has been released!", rel.Title),
		Description: truncate(rel.Overview, maxOverviewRunes),
		Color:       colorGreen,
		Fields: []embedField{
			{Name: "Rating", Value: fmt.Sprintf("⭐ %.1f/10", rel.VoteAverage), Inline: true},
			{Name: "Added to", Value: "✅ " + strings.Join(addedTo, " & "), Inline: true},
		},
		Footer:    &embedFooter{Text: footerText},
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if rel.PosterPath != "" {
		data.Thumbnail = &embedThumbnail{URL: imageBaseURL + rel.PosterPath}
	}
	return data
}

func (s *webhookService) send(ctx context.Context, data embed) bool {
	body, err := json.Marshal(webhookPayload{Embeds: []embed{data}})
	if err != nil {
		s.logger.Error("encode discord payload", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("build discord request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("send discord notification", "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		s.logger.Error("discord webhook rejected payload", "status", resp.StatusCode)
		return false
	}
	return true
}

// truncate shortens text to at most limit runes, reserving three for an
// ellipsis.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

type noopService struct{}

func (noopService) Enabled() bool { return false }

func (noopService) ReleaseNotifications(context.Context, []release.Release, dispatch.Results) int {
	return 0
}

func (noopService) Test(context.Context) error { return ErrDisabled }
