package pipeline_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AquaHorizonGaming/digitarr/internal/config"
	"github.com/AquaHorizonGaming/digitarr/internal/logging"
	"github.com/AquaHorizonGaming/digitarr/internal/pipeline"
)

// fakeBackends stands in for TMDB, Overseerr, Riven, and Discord at once.
type fakeBackends struct {
	overseerrRequests int
	rivenBatches      int
	discordDeliveries int
}

func (f *fakeBackends) handler(t *testing.T) http.Handler {
	today := time.Now().Format("2006-01-02")
	mux := http.NewServeMux()

	mux.HandleFunc("/tmdb/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("release_date.gte") != today {
			t.Errorf("expected today's window, got %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page":    1,
			"results": []map[string]any{{"id": 603}, {"id": 11}},
		})
	})
	mux.HandleFunc("/tmdb/movie/603", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 603, "title": "The Matrix", "overview": "Hacker saga.",
			"vote_average": 8.2, "original_language": "en",
			"genres": []map[string]any{{"id": 878, "name": "Science Fiction"}},
			"release_dates": map[string]any{"results": []map[string]any{{
				"iso_3166_1": "US",
				"release_dates": []map[string]any{{
					"certification": "R",
					"release_date":  today + "T00:00:00.000Z",
					"type":          4,
				}},
			}}},
		})
	})
	mux.HandleFunc("/tmdb/movie/11", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 11, "title": "Low Rated", "vote_average": 2.0, "original_language": "en",
		})
	})

	mux.HandleFunc("/overseerr/api/v1/movie/603", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"mediaInfo": map[string]any{"status": 1}})
	})
	mux.HandleFunc("/overseerr/api/v1/request", func(w http.ResponseWriter, r *http.Request) {
		f.overseerrRequests++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	})

	mux.HandleFunc("/riven/api/v1/items/add", func(w http.ResponseWriter, r *http.Request) {
		f.rivenBatches++
		fmt.Fprint(w, `{}`)
	})

	mux.HandleFunc("/discord", func(w http.ResponseWriter, r *http.Request) {
		f.discordDeliveries++
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func TestRunEndToEnd(t *testing.T) {
	backends := &fakeBackends{}
	server := httptest.NewServer(backends.handler(t))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.TMDB.APIKey = "tmdb-key"
	cfg.TMDB.BaseURL = server.URL + "/tmdb"
	cfg.Overseerr.APIURL = server.URL + "/overseerr"
	cfg.Overseerr.APIKey = "overseerr-key"
	cfg.Riven.APIURL = server.URL + "/riven"
	cfg.Riven.APIKey = "riven-key"
	cfg.Discord.WebhookURL = server.URL + "/discord"
	cfg.Filters.MinTMDBRating = 6.0
	cfg.HTTP.RequestTimeout = 5

	p, err := pipeline.New(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	summary := p.Run(context.Background())

	if summary.RunID == "" {
		t.Fatal("expected run id")
	}
	if summary.Found != 2 {
		t.Fatalf("expected two discovered releases, got %d", summary.Found)
	}
	if summary.Filtered != 1 {
		t.Fatalf("expected rating filter to drop one release, got %d", summary.Filtered)
	}
	if summary.Accepted != 1 || summary.Notified != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if backends.overseerrRequests != 1 {
		t.Fatalf("expected one overseerr submit, got %d", backends.overseerrRequests)
	}
	if backends.rivenBatches != 1 {
		t.Fatalf("expected one riven batch, got %d", backends.rivenBatches)
	}
	if backends.discordDeliveries != 1 {
		t.Fatalf("expected one discord delivery, got %d", backends.discordDeliveries)
	}
	if len(summary.Releases) != 1 || summary.Releases[0].Certification != "R" {
		t.Fatalf("unexpected surviving release: %#v", summary.Releases)
	}
	if !summary.Results.Notifiable("603") {
		t.Fatalf("expected release notifiable: %#v", summary.Results)
	}
}

func TestRunSurvivesUnreachableCatalog(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	cfg := config.Default()
	cfg.TMDB.APIKey = "tmdb-key"
	cfg.TMDB.BaseURL = server.URL
	cfg.Overseerr.APIURL = server.URL
	cfg.Overseerr.APIKey = "overseerr-key"
	cfg.HTTP.RequestTimeout = 1

	p, err := pipeline.New(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	summary := p.Run(context.Background())
	if summary.Found != 0 || summary.Filtered != 0 || summary.Notified != 0 {
		t.Fatalf("expected empty run, got %+v", summary)
	}
}

func TestNewFailsFastWithoutOverseerrKey(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.APIKey = "tmdb-key"
	cfg.Overseerr.APIKey = ""

	if _, err := pipeline.New(&cfg, logging.NewNop()); err == nil {
		t.Fatal("expected construction error for missing overseerr key")
	}
}
