package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/services"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
)

type stubSearcher struct {
	name    string
	results []models.StoreResult
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, track models.Track) ([]models.StoreResult, error) {
	return s.results, s.err
}

func (s *stubSearcher) Name() string { return s.name }

func newTestRouter(t *testing.T, dataDir string, searchers []services.Searcher) *BasicRouter {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	engine := tasks.NewSearchEngine(searchers, nil, 100, logger)

	router := NewBasicRouter()
	router.Use(CORSMiddleware())
	router.Handler(NewSearchHandler(engine, dataDir, logger))
	router.Handler(HealthHandler{})
	return router
}

func TestSearchHandler(t *testing.T) {
	hit := models.StoreResult{
		Store:     "Bandcamp",
		Artist:    "Robert Hood",
		Title:     "Minus",
		URL:       "https://bandcamp.com/track/minus",
		Price:     "$2.00",
		Available: true,
	}

	t.Run("returns matches for a submitted tracklist", func(t *testing.T) {
		dataDir := t.TempDir()
		router := newTestRouter(t, dataDir, []services.Searcher{
			&stubSearcher{name: "Bandcamp", results: []models.StoreResult{hit}},
		})

		body := `{"tracklist": "Robert Hood - Minus"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp SearchResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(resp.Results))
		}
		if resp.Results[0].FoundTitle != "Minus" || resp.Results[0].Store != "Bandcamp" {
			t.Errorf("unexpected row: %+v", resp.Results[0])
		}

		entries, err := os.ReadDir(dataDir)
		if err != nil {
			t.Fatalf("failed to read data dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 run directory, got %d", len(entries))
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		router := newTestRouter(t, "", nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("{not json")))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}

		var resp errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Detail != "invalid request body" {
			t.Errorf("unexpected detail: %q", resp.Detail)
		}
	})

	t.Run("rejects input without parseable tracks", func(t *testing.T) {
		router := newTestRouter(t, "", nil)

		body := `{"tracklist": "# just a header\n\n"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}

		var resp errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Detail != "No valid tracks found in input." {
			t.Errorf("unexpected detail: %q", resp.Detail)
		}
	})

	t.Run("rejects wrong method", func(t *testing.T) {
		router := newTestRouter(t, "", nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status 405, got %d", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(t, "", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("unexpected status: %q", resp["status"])
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := newTestRouter(t, "", nil)

	t.Run("answers preflight requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/search", nil))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected wildcard origin, got %q", got)
		}
	})

	t.Run("adds headers to normal responses", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected wildcard origin, got %q", got)
		}
	})
}
