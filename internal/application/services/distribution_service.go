package services

import (
	"context"
	"sort"
	"strings"

	"github.com/providervault/ai-service/internal/application/parsing"
	"github.com/providervault/ai-service/internal/application/prompts"
	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/providers"
	"github.com/providervault/ai-service/internal/domain/repositories"
	apperrors "github.com/providervault/ai-service/pkg/errors"
)

const (
	defaultAnalysisLimit = 20
	maxAnalysisLimit     = 100
)

// DistributionService analyzes how a specialty's providers are spread
// across the network and produces administrator-facing insights.
type DistributionService struct {
	repo      repositories.ProviderRepository
	composer  *prompts.Composer
	generator providers.GenerationProvider
}

// NewDistributionService creates a distribution service
func NewDistributionService(repo repositories.ProviderRepository, composer *prompts.Composer, generator providers.GenerationProvider) *DistributionService {
	return &DistributionService{
		repo:      repo,
		composer:  composer,
		generator: generator,
	}
}

// Analyze retrieves up to limit providers for a specialty, summarizes
// their distribution, and generates an analysis. Limit defaults to 20
// and must stay within 1 to 100; a specialty with no providers is
// NOT_FOUND.
func (s *DistributionService) Analyze(ctx context.Context, specialty string, limit int) (*entities.DistributionAnalysis, error) {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required")
	}
	if limit == 0 {
		limit = defaultAnalysisLimit
	}
	if limit < 1 || limit > maxAnalysisLimit {
		return nil, apperrors.NewValidationError("limit must be between 1 and 100")
	}

	matched, err := s.repo.ListBySpecialty(ctx, specialty, limit)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, apperrors.NewNotFoundError("no providers found for specialty: " + specialty)
	}

	facts := summarizeProviders(matched)

	raw, err := s.generator.Complete(ctx, s.composer.AnalyzeDistribution(ctx, facts, len(matched)))
	if err != nil {
		return nil, err
	}

	return parsing.ParseDistributionAnalysis(specialty, len(matched), raw)
}

// summarizeProviders counts the retrieved providers by specialty and
// state, most frequent first, as grounding for the analysis prompt.
func summarizeProviders(matched []entities.Provider) *entities.GroundingFacts {
	bySpecialty := map[string]int{}
	byState := map[string]int{}
	for _, p := range matched {
		bySpecialty[p.Specialty]++
		byState[p.State]++
	}

	facts := &entities.GroundingFacts{}
	for specialty, count := range bySpecialty {
		facts.SpecialtyCounts = append(facts.SpecialtyCounts, entities.SpecialtyCount{
			Specialty:     specialty,
			ProviderCount: count,
		})
	}
	for state, count := range byState {
		facts.StateCounts = append(facts.StateCounts, entities.StateCount{
			State:         state,
			ProviderCount: count,
		})
	}

	sort.Slice(facts.SpecialtyCounts, func(i, j int) bool {
		a, b := facts.SpecialtyCounts[i], facts.SpecialtyCounts[j]
		if a.ProviderCount != b.ProviderCount {
			return a.ProviderCount > b.ProviderCount
		}
		return a.Specialty < b.Specialty
	})
	sort.Slice(facts.StateCounts, func(i, j int) bool {
		a, b := facts.StateCounts[i], facts.StateCounts[j]
		if a.ProviderCount != b.ProviderCount {
			return a.ProviderCount > b.ProviderCount
		}
		return a.State < b.State
	})

	return facts
}
