package api

import (
	"encoding/json"
	"log"
	"net/http"
)

type rematchRequest struct {
	ApplicantID string `json:"applicant_id"` // optional filter
}

type rematchResponse struct {
	Rematched int `json:"rematched"`
}

// handleRematch reruns suggestion passes with the current weight vector.
// With no filter it refreshes every stored applicant; with applicant_id it
// refreshes just that one.
func (h *Handler) handleRematch(w http.ResponseWriter, r *http.Request) {
	var req rematchRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	ctx := r.Context()

	if req.ApplicantID != "" {
		if _, err := h.suggestSvc.SuggestForApplicant(ctx, req.ApplicantID); err != nil {
			writeError(w, http.StatusInternalServerError, "rematch: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rematchResponse{Rematched: 1})
		return
	}

	processed, err := h.suggestSvc.SuggestAll(ctx)
	if err != nil {
		log.Printf("rematch stopped after %d applicants: %v", processed, err)
		writeError(w, http.StatusInternalServerError, "rematch: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rematchResponse{Rematched: processed})
}
