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

// TriageDisclaimer accompanies every triage result.
const TriageDisclaimer = "This is not medical advice. Always consult with a qualified healthcare provider for proper diagnosis and treatment."

const (
	triageStatePoolSize  = 50
	maxAvailableProviders = 5
)

// TriageService recommends specialties for described symptoms with an
// urgency assessment, and checks real provider availability when the
// caller names a state.
type TriageService struct {
	repo       repositories.ProviderRepository
	composer   *prompts.Composer
	generator  providers.GenerationProvider
	classifier *UrgencyClassifier
}

// NewTriageService creates a triage service
func NewTriageService(repo repositories.ProviderRepository, composer *prompts.Composer, generator providers.GenerationProvider, classifier *UrgencyClassifier) *TriageService {
	return &TriageService{
		repo:       repo,
		composer:   composer,
		generator:  generator,
		classifier: classifier,
	}
}

// Recommend triages the symptom text. The final urgency is the higher
// of the model's assessment and the local lexicon floor; an emergency
// result always carries a directive. Provider availability lookup
// failure never fails the triage itself.
func (s *TriageService) Recommend(ctx context.Context, symptoms, locationState string) (*entities.SymptomRecommendation, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, apperrors.NewValidationError("symptoms are required")
	}
	locationState = strings.ToUpper(strings.TrimSpace(locationState))
	if locationState != "" && len(locationState) != 2 {
		return nil, apperrors.NewValidationError("location_state must be a two-letter state code")
	}

	raw, err := s.generator.Complete(ctx, s.composer.RecommendBySymptoms(ctx, symptoms))
	if err != nil {
		return nil, err
	}

	fields, err := parsing.ParseSymptomFields(raw)
	if err != nil {
		return nil, err
	}

	level := s.classifier.Classify(ctx, symptoms, fields.UrgencyRaw)

	result := &entities.SymptomRecommendation{
		Symptoms:               symptoms,
		RecommendedSpecialties: fields.Specialties,
		Reasoning:              fields.Reasoning,
		UrgencyLevel:           level,
		EmergencyAction:        s.classifier.Directive(level, fields.EmergencyAction),
		Disclaimer:             TriageDisclaimer,
		AvailableProviders:     []entities.Provider{},
	}

	if locationState != "" {
		s.attachAvailableProviders(ctx, result, locationState)
	}

	return result, nil
}

func (s *TriageService) attachAvailableProviders(ctx context.Context, result *entities.SymptomRecommendation, state string) {
	pool, err := s.repo.ListByState(ctx, state, triageStatePoolSize)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Str("state", state).Err(err).Msg("provider availability lookup failed")
		return
	}

	primary := result.RecommendedSpecialties[0]
	for _, p := range pool {
		if strings.EqualFold(p.Specialty, primary) {
			result.AvailableProviders = append(result.AvailableProviders, p)
			if len(result.AvailableProviders) == maxAvailableProviders {
				break
			}
		}
	}
	result.LocationChecked = state
}
