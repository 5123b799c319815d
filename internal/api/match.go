package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

type matchRequest struct {
	Profile       *matching.ApplicantProfile `json:"profile"`
	ApplicantID   string                     `json:"applicant_id,omitempty"` // stored profile, used when profile is absent
	Opportunities []matching.Opportunity     `json:"opportunities"`
	Weights       map[string]float64         `json:"weights,omitempty"` // overrides, merged over the active vector
}

type matchResponse struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Weights     matching.WeightVector  `json:"weights"`
	Results     []matching.MatchResult `json:"results"`
}

// handleMatch ranks a caller-supplied set of opportunities against a
// caller-supplied profile. Nothing is persisted; this is the stateless
// scoring endpoint.
func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	profile := req.Profile
	if profile == nil {
		if req.ApplicantID == "" {
			writeError(w, http.StatusBadRequest, "profile or applicant_id is required")
			return
		}
		applicant, err := h.market.GetApplicant(r.Context(), req.ApplicantID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "applicant not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "load applicant: "+err.Error())
			return
		}
		p := applicant.ToMatching()
		profile = &p
	}

	weights := h.store.Weights()
	if len(req.Weights) > 0 {
		for k, v := range req.Weights {
			weights[k] = v
		}
		if err := weights.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	results, err := h.engine.Rank(profile, req.Opportunities, weights)
	if err != nil {
		var invalid *matching.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "rank: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, matchResponse{
		GeneratedAt: time.Now().UTC(),
		Weights:     weights,
		Results:     results,
	})
}

// handleSuggestions runs a fresh suggestion pass for a stored applicant and
// returns the archived report.
func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	applicantID := r.PathValue("applicantID")

	report, err := h.suggestSvc.SuggestForApplicant(r.Context(), applicantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "applicant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "suggest: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

type matchRunSummary struct {
	ID               string    `json:"id"`
	ApplicantID      string    `json:"applicant_id"`
	OpportunityCount int       `json:"opportunity_count"`
	TopScore         float64   `json:"top_score"`
	StorageRef       string    `json:"storage_ref,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// handleListRuns returns an applicant's match-run history, newest first.
func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	applicantID := r.PathValue("applicantID")

	runs, err := h.market.ListMatchRunsByApplicant(r.Context(), applicantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list runs: "+err.Error())
		return
	}

	out := make([]matchRunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, matchRunSummary{
			ID:               run.ID,
			ApplicantID:      run.ApplicantID,
			OpportunityCount: run.OpportunityCount,
			TopScore:         run.TopScore,
			StorageRef:       run.StorageRef,
			CreatedAt:        run.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": out})
}

type matchRunDetail struct {
	matchRunSummary
	Weights json.RawMessage `json:"weights"`
	Results json.RawMessage `json:"results"`
}

// handleGetRun returns one match run including its full persisted results.
func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")

	run, err := h.market.GetMatchRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get run: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, matchRunDetail{
		matchRunSummary: matchRunSummary{
			ID:               run.ID,
			ApplicantID:      run.ApplicantID,
			OpportunityCount: run.OpportunityCount,
			TopScore:         run.TopScore,
			StorageRef:       run.StorageRef,
			CreatedAt:        run.CreatedAt,
		},
		Weights: run.Weights,
		Results: run.Results,
	})
}
