package handlers

import (
	"context"
	"net/http"

	"github.com/providervault/ai-service/internal/domain/entities"
)

// SymptomTriage defines the handler dependency for symptom-based
// specialty recommendation.
type SymptomTriage interface {
	Recommend(ctx context.Context, symptoms, locationState string) (*entities.SymptomRecommendation, error)
}

// TriageHandler handles symptom triage requests
type TriageHandler struct {
	service SymptomTriage
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(service SymptomTriage) *TriageHandler {
	return &TriageHandler{service: service}
}

type recommendRequest struct {
	Symptoms      string `json:"symptoms"`
	LocationState string `json:"location_state"`
}

// Recommend handles POST /api/symptoms/recommend
func (h *TriageHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	result, err := h.service.Recommend(r.Context(), req.Symptoms, req.LocationState)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
