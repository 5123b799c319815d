package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

type weightsResponse struct {
	Weights matching.WeightVector `json:"weights"`
}

// handleGetWeights returns the active weight vector.
func (h *Handler) handleGetWeights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, weightsResponse{Weights: h.store.Weights()})
}

type putWeightsRequest struct {
	Weights map[string]float64 `json:"weights"`
}

// handlePutWeights applies a partial weight update. The update is validated
// as a whole before anything is applied; a rejected update leaves the active
// vector untouched. Accepted updates are persisted so they survive restarts.
func (h *Handler) handlePutWeights(w http.ResponseWriter, r *http.Request) {
	var req putWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Weights) == 0 {
		writeError(w, http.StatusBadRequest, "weights is required")
		return
	}

	updated, err := h.store.SetWeights(req.Weights)
	if err != nil {
		var invalid *matching.ValidationError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "set weights: "+err.Error())
		return
	}

	if err := h.market.SaveWeights(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, "persist weights: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, weightsResponse{Weights: updated})
}
