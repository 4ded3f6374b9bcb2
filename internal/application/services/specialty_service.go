package services

import (
	"context"
	"strings"

	"github.com/providervault/ai-service/internal/application/parsing"
	"github.com/providervault/ai-service/internal/application/prompts"
	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/providers"
	apperrors "github.com/providervault/ai-service/pkg/errors"
)

const (
	defaultRelatedCount = 3
	maxRelatedCount     = 10
)

// SpecialtyService produces patient-facing specialty knowledge: prose
// descriptions and referral suggestions.
type SpecialtyService struct {
	composer  *prompts.Composer
	generator providers.GenerationProvider
}

// NewSpecialtyService creates a specialty service
func NewSpecialtyService(composer *prompts.Composer, generator providers.GenerationProvider) *SpecialtyService {
	return &SpecialtyService{
		composer:  composer,
		generator: generator,
	}
}

// Describe generates a patient-friendly description of a specialty.
func (s *SpecialtyService) Describe(ctx context.Context, specialty string) (*entities.SpecialtyDescription, error) {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required")
	}

	raw, err := s.generator.Complete(ctx, s.composer.DescribeSpecialty(ctx, specialty))
	if err != nil {
		return nil, err
	}

	return parsing.ParseDescription(specialty, raw)
}

// Related suggests specialties that commonly collaborate with the given
// one. Count defaults to 3 and must stay within 1 to 10.
func (s *SpecialtyService) Related(ctx context.Context, specialty string, count int) (*entities.RelatedSpecialties, error) {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required")
	}
	if count == 0 {
		count = defaultRelatedCount
	}
	if count < 1 || count > maxRelatedCount {
		return nil, apperrors.NewValidationError("count must be between 1 and 10")
	}

	raw, err := s.generator.Complete(ctx, s.composer.RelatedSpecialties(ctx, specialty, count))
	if err != nil {
		return nil, err
	}

	return parsing.ParseRelatedSpecialties(specialty, raw, count)
}
