package handlers

import (
	"context"
	"net/http"

	"github.com/providervault/ai-service/internal/domain/repositories"
)

// Pinger reports whether an infrastructure dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NetworkHandler handles health and network metadata requests
type NetworkHandler struct {
	repo  repositories.ProviderRepository
	db    Pinger
	cache Pinger
}

// NewNetworkHandler creates a new network handler. cache may be nil
// when Redis is not configured.
func NewNetworkHandler(repo repositories.ProviderRepository, db Pinger, cache Pinger) *NetworkHandler {
	return &NetworkHandler{
		repo:  repo,
		db:    db,
		cache: cache,
	}
}

// Health handles GET /health
func (h *NetworkHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]string{}
	healthy := true

	if err := h.db.Ping(r.Context()); err != nil {
		components["database"] = "down"
		healthy = false
	} else {
		components["database"] = "up"
	}

	if h.cache == nil {
		components["cache"] = "disabled"
	} else if err := h.cache.Ping(r.Context()); err != nil {
		components["cache"] = "down"
	} else {
		components["cache"] = "up"
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	respondWithJSON(w, statusCode, map[string]interface{}{
		"status":     status,
		"components": components,
	})
}

// Stats handles GET /api/stats
func (h *NetworkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// Specialties handles GET /api/specialties
func (h *NetworkHandler) Specialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.repo.ListSpecialties(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"specialties": specialties,
		"count":       len(specialties),
	})
}
