package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fundmatch/fundmatch/internal/marketplace"
)

type opportunityPayload struct {
	ID              string    `json:"id,omitempty"`
	FunderName      string    `json:"funder_name,omitempty"`
	FunderID        string    `json:"funder_id,omitempty"`
	Title           string    `json:"title"`
	AcceptedTypes   []string  `json:"accepted_types"`
	AmountMin       float64   `json:"amount_min"`
	AmountMax       float64   `json:"amount_max"`
	Stages          []string  `json:"stages"`
	Industries      []string  `json:"industries"`
	Geographies     []string  `json:"geographies"`
	IntentTags      []string  `json:"intent_tags,omitempty"`
	PublishedAt     time.Time `json:"published_at,omitempty"`
	CompetitorCount int       `json:"competitor_count"`
	Status          string    `json:"status,omitempty"`
}

func opportunityToPayload(o *marketplace.OpportunityRow) opportunityPayload {
	return opportunityPayload{
		ID:              o.ID,
		FunderID:        o.FunderID,
		Title:           o.Title,
		AcceptedTypes:   o.AcceptedTypes,
		AmountMin:       o.AmountMin,
		AmountMax:       o.AmountMax,
		Stages:          o.Stages,
		Industries:      o.Industries,
		Geographies:     o.Geographies,
		IntentTags:      o.IntentTags,
		PublishedAt:     o.PublishedAt,
		CompetitorCount: o.CompetitorCount,
		Status:          o.Status,
	}
}

// handleCreateOpportunity publishes a new opportunity under a funder,
// creating the funder on first use.
func (h *Handler) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var req opportunityPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.FunderName == "" && req.FunderID == "" {
		writeError(w, http.StatusBadRequest, "funder_name or funder_id is required")
		return
	}
	if req.AmountMin > req.AmountMax {
		writeError(w, http.StatusBadRequest, "amount_min must not exceed amount_max")
		return
	}

	ctx := r.Context()
	funderID := req.FunderID
	if funderID == "" {
		funder, err := h.market.EnsureFunder(ctx, req.FunderName)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "ensure funder: "+err.Error())
			return
		}
		funderID = funder.ID
	}

	created, err := h.market.CreateOpportunity(ctx, funderID, &marketplace.OpportunityRow{
		Title:           req.Title,
		AcceptedTypes:   req.AcceptedTypes,
		AmountMin:       req.AmountMin,
		AmountMax:       req.AmountMax,
		Stages:          req.Stages,
		Industries:      req.Industries,
		Geographies:     req.Geographies,
		IntentTags:      req.IntentTags,
		PublishedAt:     req.PublishedAt,
		CompetitorCount: req.CompetitorCount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create opportunity: "+err.Error())
		return
	}

	h.cache.Put(created.ID, created)
	writeJSON(w, http.StatusCreated, opportunityToPayload(created))
}

// handleListOpportunities returns all open opportunities, newest first.
func (h *Handler) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	rows, err := h.market.ListOpenOpportunities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list opportunities: "+err.Error())
		return
	}

	out := make([]opportunityPayload, 0, len(rows))
	for i := range rows {
		out = append(out, opportunityToPayload(&rows[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"opportunities": out})
}

// handleGetOpportunity returns one opportunity, serving from the catalog
// cache when possible.
func (h *Handler) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	oppID := r.PathValue("oppID")

	if cached := h.cache.Get(oppID); cached != nil {
		writeJSON(w, http.StatusOK, opportunityToPayload(cached))
		return
	}

	opp, err := h.market.GetOpportunity(r.Context(), oppID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get opportunity: "+err.Error())
		return
	}

	h.cache.Put(oppID, opp)
	writeJSON(w, http.StatusOK, opportunityToPayload(opp))
}

// handleCloseOpportunity marks an opportunity as closed.
func (h *Handler) handleCloseOpportunity(w http.ResponseWriter, r *http.Request) {
	oppID := r.PathValue("oppID")

	if err := h.market.CloseOpportunity(r.Context(), oppID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "close opportunity: "+err.Error())
		return
	}

	h.cache.Invalidate(oppID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// handleRecordApplication bumps an opportunity's competitor count.
func (h *Handler) handleRecordApplication(w http.ResponseWriter, r *http.Request) {
	oppID := r.PathValue("oppID")

	if err := h.market.RecordApplication(r.Context(), oppID); err != nil {
		writeError(w, http.StatusInternalServerError, "record application: "+err.Error())
		return
	}

	h.cache.Invalidate(oppID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

type applicantPayload struct {
	ID            string   `json:"id,omitempty"`
	DisplayName   string   `json:"display_name"`
	DesiredTypes  []string `json:"desired_types"`
	DesiredAmount float64  `json:"desired_amount"`
	Stage         string   `json:"stage"`
	Industry      string   `json:"industry"`
	Geography     string   `json:"geography"`
	Intent        string   `json:"intent,omitempty"`
}

// handleUpsertApplicant creates or updates an applicant profile.
func (h *Handler) handleUpsertApplicant(w http.ResponseWriter, r *http.Request) {
	var req applicantPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}

	saved, err := h.market.UpsertApplicant(r.Context(), &marketplace.ApplicantRow{
		ID:            req.ID,
		DisplayName:   req.DisplayName,
		DesiredTypes:  req.DesiredTypes,
		DesiredAmount: req.DesiredAmount,
		Stage:         req.Stage,
		Industry:      req.Industry,
		Geography:     req.Geography,
		Intent:        req.Intent,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "upsert applicant: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, applicantPayload{
		ID:            saved.ID,
		DisplayName:   saved.DisplayName,
		DesiredTypes:  saved.DesiredTypes,
		DesiredAmount: saved.DesiredAmount,
		Stage:         saved.Stage,
		Industry:      saved.Industry,
		Geography:     saved.Geography,
		Intent:        saved.Intent,
	})
}

// handleGetApplicant returns one applicant profile.
func (h *Handler) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	applicantID := r.PathValue("applicantID")

	a, err := h.market.GetApplicant(r.Context(), applicantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "applicant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get applicant: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, applicantPayload{
		ID:            a.ID,
		DisplayName:   a.DisplayName,
		DesiredTypes:  a.DesiredTypes,
		DesiredAmount: a.DesiredAmount,
		Stage:         a.Stage,
		Industry:      a.Industry,
		Geography:     a.Geography,
		Intent:        a.Intent,
	})
}
