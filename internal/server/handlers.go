package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/formatter"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
	"github.com/strictlymomo/trainspotters-friend/internal/tracklist"
)

// SearchRequest is the JSON body accepted by POST /search.
type SearchRequest struct {
	Tracklist string `json:"tracklist"`
}

// SearchResponse is the JSON body returned by POST /search.
type SearchResponse struct {
	Results []models.MatchRow `json:"results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// SearchHandler serves the tracklist search endpoint. Each request parses the
// submitted tracklist, sweeps the configured stores, and writes the run's
// artifacts under the data directory before responding.
type SearchHandler struct {
	engine  *tasks.SearchEngine
	dataDir string
	logger  *log.Logger
}

// NewSearchHandler creates a [SearchHandler] backed by the given engine.
func NewSearchHandler(engine *tasks.SearchEngine, dataDir string, logger *log.Logger) *SearchHandler {
	return &SearchHandler{engine: engine, dataDir: dataDir, logger: logger}
}

// Routes implements [Handler].
func (h *SearchHandler) Routes() []string {
	return []string{"POST /search"}
}

// ServeHTTP implements [http.Handler].
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tracks := tracklist.Parse(req.Tracklist, h.logger)
	if len(tracks) == 0 {
		writeError(w, http.StatusBadRequest, "No valid tracks found in input.")
		return
	}

	outcome, err := h.engine.Run(r.Context(), nil, tracks)
	if err != nil {
		h.logger.Error("search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	if h.dataDir != "" {
		if dir, err := formatter.SaveRun(h.dataDir, req.Tracklist, outcome); err != nil {
			h.logger.Error("failed to save run artifacts", "error", err)
		} else {
			h.logger.Info("saved run artifacts", "dir", dir)
		}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: outcome.Rows})
}

// HealthHandler responds to liveness checks.
type HealthHandler struct{}

// Routes implements [Handler].
func (h HealthHandler) Routes() []string {
	return []string{"GET /health"}
}

// ServeHTTP implements [http.Handler].
func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
