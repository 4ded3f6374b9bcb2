package handlers

import (
	"context"
	"net/http"

	"github.com/providervault/ai-service/internal/domain/entities"
)

// ProviderSearch defines the handler dependency for natural-language
// provider search.
type ProviderSearch interface {
	Search(ctx context.Context, query string, limit int) (*entities.SearchResult, error)
}

// SearchHandler handles semantic provider search requests
type SearchHandler struct {
	service ProviderSearch
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service ProviderSearch) *SearchHandler {
	return &SearchHandler{service: service}
}

type searchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit"`
}

// Search handles POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	// An omitted limit uses the service default; an explicit zero does not.
	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
		if limit == 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100", "VALIDATION")
			return
		}
	}

	result, err := h.service.Search(r.Context(), req.Query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
