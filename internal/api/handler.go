// Package api implements the hosted fundmatch REST API.
// It provides matching and marketplace endpoints backed by Postgres and
// blob storage.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/fundmatch/fundmatch/internal/marketplace"
	"github.com/fundmatch/fundmatch/internal/suggest"
	"github.com/fundmatch/fundmatch/pkg/matching"
)

// Handler is the top-level API handler for the hosted fundmatch service.
type Handler struct {
	db         *sql.DB
	market     *marketplace.Service
	suggestSvc *suggest.Service
	store      *matching.Store
	engine     *matching.Engine
	cache      *CatalogCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, market *marketplace.Service, suggestSvc *suggest.Service, store *matching.Store, engine *matching.Engine, cache *CatalogCache) *Handler {
	if cache == nil {
		cache = NewCatalogCacheFromEnv()
	}
	return &Handler{
		db:         db,
		market:     market,
		suggestSvc: suggestSvc,
		store:      store,
		engine:     engine,
		cache:      cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/match", h.handleMatch)
	mux.HandleFunc("POST /api/v1/opportunities", h.handleCreateOpportunity)
	mux.HandleFunc("POST /api/v1/opportunities/{oppID}/applications", h.handleRecordApplication)
	mux.HandleFunc("POST /api/v1/opportunities/{oppID}/close", h.handleCloseOpportunity)
	mux.HandleFunc("POST /api/v1/applicants", h.handleUpsertApplicant)

	// Read endpoints
	mux.HandleFunc("GET /api/opportunities", h.handleListOpportunities)
	mux.HandleFunc("GET /api/opportunities/{oppID}", h.handleGetOpportunity)
	mux.HandleFunc("GET /api/applicants/{applicantID}", h.handleGetApplicant)
	mux.HandleFunc("GET /api/applicants/{applicantID}/suggestions", h.handleSuggestions)
	mux.HandleFunc("GET /api/applicants/{applicantID}/runs", h.handleListRuns)
	mux.HandleFunc("GET /api/runs/{runID}", h.handleGetRun)

	// Admin endpoints
	mux.HandleFunc("GET /api/admin/weights", h.handleGetWeights)
	mux.HandleFunc("PUT /api/admin/weights", h.handlePutWeights)
	mux.HandleFunc("POST /api/admin/rematch", h.handleRematch)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
