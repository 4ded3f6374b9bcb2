package routes

import (
	"net/http"

	"github.com/providervault/ai-service/internal/api/handlers"
	"github.com/providervault/ai-service/internal/api/middleware"
	"github.com/providervault/ai-service/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	networkHandler   *handlers.NetworkHandler
	specialtyHandler *handlers.SpecialtyHandler
	analysisHandler  *handlers.AnalysisHandler
	triageHandler    *handlers.TriageHandler
	searchHandler    *handlers.SearchHandler
	faqHandler       *handlers.FAQHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	networkHandler *handlers.NetworkHandler,
	specialtyHandler *handlers.SpecialtyHandler,
	analysisHandler *handlers.AnalysisHandler,
	triageHandler *handlers.TriageHandler,
	searchHandler *handlers.SearchHandler,
	faqHandler *handlers.FAQHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		networkHandler:   networkHandler,
		specialtyHandler: specialtyHandler,
		analysisHandler:  analysisHandler,
		triageHandler:    triageHandler,
		searchHandler:    searchHandler,
		faqHandler:       faqHandler,
		cacheMiddleware:  cacheMiddleware,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health and network metadata
	r.mux.HandleFunc("GET /health", r.networkHandler.Health)
	r.mux.HandleFunc("GET /api/stats", r.networkHandler.Stats)
	r.mux.HandleFunc("GET /api/specialties", r.networkHandler.Specialties)

	// Specialty knowledge
	r.mux.HandleFunc("POST /api/specialty/describe", r.specialtyHandler.Describe)
	r.mux.HandleFunc("POST /api/specialty/related", r.specialtyHandler.Related)

	// Distribution analysis
	r.mux.HandleFunc("POST /api/providers/analyze", r.analysisHandler.Analyze)

	// Symptom triage
	r.mux.HandleFunc("POST /api/symptoms/recommend", r.triageHandler.Recommend)

	// Semantic search
	r.mux.HandleFunc("POST /api/search", r.searchHandler.Search)

	// Conversational FAQ
	r.mux.HandleFunc("POST /api/faq", r.faqHandler.Ask)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
