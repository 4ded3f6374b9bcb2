package services

import (
	"context"
	"strings"

	"github.com/providervault/ai-service/internal/application/parsing"
	"github.com/providervault/ai-service/internal/application/prompts"
	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/providers"
	"github.com/providervault/ai-service/internal/domain/repositories"
	"github.com/providervault/ai-service/internal/infrastructure/observability"
	apperrors "github.com/providervault/ai-service/pkg/errors"
)

const (
	defaultSearchLimit       = 10
	maxSearchLimit           = 100
	perSpecialtyRetrievalCap = 20
)

// SearchService answers natural-language provider queries: the model
// maps the query to specialties and terms, then providers are retrieved
// per specialty through the keyword index when one is available, with
// the Postgres store as fallback and source of truth.
type SearchService struct {
	repo       repositories.ProviderRepository
	searchRepo repositories.ProviderSearchRepository
	composer   *prompts.Composer
	generator  providers.GenerationProvider
}

// NewSearchService creates a search service. searchRepo may be nil when
// no keyword index is configured.
func NewSearchService(repo repositories.ProviderRepository, searchRepo repositories.ProviderSearchRepository, composer *prompts.Composer, generator providers.GenerationProvider) *SearchService {
	return &SearchService{
		repo:       repo,
		searchRepo: searchRepo,
		composer:   composer,
		generator:  generator,
	}
}

// Search runs the semantic provider search. Limit defaults to 10 and
// must stay within 1 to 100; validation happens before any model call.
// Results are de-duplicated by NPI and ranked by the model's specialty
// priority order. An empty result list is a valid answer.
func (s *SearchService) Search(ctx context.Context, query string, limit int) (*entities.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 1 || limit > maxSearchLimit {
		return nil, apperrors.NewValidationError("limit must be between 1 and 100")
	}

	raw, err := s.generator.Complete(ctx, s.composer.SemanticSearch(ctx, query))
	if err != nil {
		return nil, err
	}

	intent, err := parsing.ParseSearchIntent(raw)
	if err != nil {
		return nil, err
	}

	unique := s.retrieveRanked(ctx, intent)

	capped := unique
	if len(capped) > limit {
		capped = capped[:limit]
	}

	return &entities.SearchResult{
		Query:                  query,
		UnderstoodIntent:       intent.Intent,
		SearchTerms:            intent.KeyTerms,
		RecommendedSpecialties: intent.Specialties,
		Providers:              capped,
		TotalFound:             len(unique),
	}, nil
}

// retrieveRanked gathers providers per recommended specialty in
// priority order, de-duplicated by NPI. A failed lookup for one
// specialty is skipped, not fatal.
func (s *SearchService) retrieveRanked(ctx context.Context, intent *parsing.SearchIntent) []entities.Provider {
	seen := map[string]struct{}{}
	unique := []entities.Provider{}

	for _, specialty := range intent.Specialties {
		matched, err := s.lookupSpecialty(ctx, specialty, intent.KeyTerms)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Str("specialty", specialty).Err(err).Msg("provider lookup failed, skipping specialty")
			continue
		}
		for _, p := range matched {
			if _, dup := seen[p.NPI]; dup {
				continue
			}
			seen[p.NPI] = struct{}{}
			unique = append(unique, p)
		}
	}

	return unique
}

func (s *SearchService) lookupSpecialty(ctx context.Context, specialty string, terms []string) ([]entities.Provider, error) {
	if s.searchRepo != nil {
		matched, err := s.searchRepo.Search(ctx, []string{specialty}, terms, perSpecialtyRetrievalCap)
		if err == nil {
			return s.hydrate(ctx, matched), nil
		}
		observability.LoggerFromContext(ctx).Warn().Str("specialty", specialty).Err(err).Msg("keyword index lookup failed, falling back to store")
	}
	return s.repo.ListBySpecialty(ctx, specialty, perSpecialtyRetrievalCap)
}

// hydrate swaps index documents for their authoritative store rows.
// The index schema carries no address or phone, so hits are re-fetched
// by NPI; a miss or store error keeps the index document as-is.
func (s *SearchService) hydrate(ctx context.Context, matched []entities.Provider) []entities.Provider {
	full := make([]entities.Provider, 0, len(matched))
	for i := range matched {
		p, err := s.repo.GetByNPI(ctx, matched[i].NPI)
		if err != nil {
			full = append(full, matched[i])
			continue
		}
		full = append(full, *p)
	}
	return full
}
