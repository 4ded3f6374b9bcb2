package handlers

import (
	"context"
	"net/http"

	"github.com/providervault/ai-service/internal/domain/entities"
)

// DistributionAnalyzer defines the handler dependency for provider
// distribution analysis.
type DistributionAnalyzer interface {
	Analyze(ctx context.Context, specialty string, limit int) (*entities.DistributionAnalysis, error)
}

// AnalysisHandler handles provider distribution analysis requests
type AnalysisHandler struct {
	service DistributionAnalyzer
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service DistributionAnalyzer) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

type analyzeRequest struct {
	Specialty string `json:"specialty"`
	Limit     int    `json:"limit"`
}

// Analyze handles POST /api/providers/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	result, err := h.service.Analyze(r.Context(), req.Specialty, req.Limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
