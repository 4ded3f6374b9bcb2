package handlers

import (
	"context"
	"net/http"

	"github.com/providervault/ai-service/internal/domain/entities"
)

// SpecialtyIntelligence defines the handler dependency for specialty
// knowledge generation.
type SpecialtyIntelligence interface {
	Describe(ctx context.Context, specialty string) (*entities.SpecialtyDescription, error)
	Related(ctx context.Context, specialty string, count int) (*entities.RelatedSpecialties, error)
}

// SpecialtyHandler handles specialty description and referral requests
type SpecialtyHandler struct {
	service SpecialtyIntelligence
}

// NewSpecialtyHandler creates a new specialty handler
func NewSpecialtyHandler(service SpecialtyIntelligence) *SpecialtyHandler {
	return &SpecialtyHandler{service: service}
}

type describeRequest struct {
	Specialty string `json:"specialty"`
}

// Describe handles POST /api/specialty/describe
func (h *SpecialtyHandler) Describe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	result, err := h.service.Describe(r.Context(), req.Specialty)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type relatedRequest struct {
	Specialty string `json:"specialty"`
	Count     int    `json:"count"`
}

// Related handles POST /api/specialty/related
func (h *SpecialtyHandler) Related(w http.ResponseWriter, r *http.Request) {
	var req relatedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	result, err := h.service.Related(r.Context(), req.Specialty, req.Count)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
