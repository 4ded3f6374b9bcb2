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
	faqSpecialtyPoolSize = 10
	faqSampleSize        = 3
	maxFollowUps         = 3
)

// faqStates are the coverage states scanned for in question text.
var faqStates = []string{"CA", "TX", "NY", "FL", "IL", "PA", "OH", "GA", "NC", "MI"}

// FAQService answers conversational questions about the provider
// network, grounding each answer in live store data and keeping the
// conversation history caller-owned.
type FAQService struct {
	repo      repositories.ProviderRepository
	composer  *prompts.Composer
	generator providers.GenerationProvider
}

// NewFAQService creates an FAQ service
func NewFAQService(repo repositories.ProviderRepository, composer *prompts.Composer, generator providers.GenerationProvider) *FAQService {
	return &FAQService{
		repo:      repo,
		composer:  composer,
		generator: generator,
	}
}

// Ask answers one question. Grounding facts are retrieved best-effort;
// a degraded store produces a less-grounded answer, never a failure.
// Follow-up suggestion failures are swallowed for the same reason. The
// returned history is the caller's plus this exchange, windowed.
func (s *FAQService) Ask(ctx context.Context, question string, history []entities.ConversationTurn) (*entities.FAQAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.NewValidationError("question is required")
	}

	facts := s.retrieveFacts(ctx, question)

	raw, err := s.generator.Complete(ctx, s.composer.FAQ(ctx, question, facts, history))
	if err != nil {
		return nil, err
	}
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return nil, apperrors.NewMalformedResponseError("faq_answer", "empty answer", raw)
	}

	return &entities.FAQAnswer{
		Answer:              answer,
		DataRetrieved:       facts,
		FollowUpSuggestions: s.suggestFollowUps(ctx, question, answer),
		ConversationHistory: entities.AppendExchange(history, question, answer),
	}, nil
}

// retrieveFacts assembles the grounding snapshot for a question:
// network stats, the specialty list, providers for any specialty the
// question mentions, and the provider count for any coverage state it
// names.
func (s *FAQService) retrieveFacts(ctx context.Context, question string) *entities.GroundingFacts {
	logger := observability.LoggerFromContext(ctx)
	facts := &entities.GroundingFacts{}
	lowered := strings.ToLower(question)

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("network stats retrieval failed")
	} else {
		facts.Stats = stats
	}

	specialties, err := s.repo.ListSpecialties(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("specialty list retrieval failed")
	} else {
		facts.Specialties = specialties
	}

	for _, specialty := range facts.Specialties {
		if !strings.Contains(lowered, strings.ToLower(specialty)) {
			continue
		}
		matched, err := s.repo.ListBySpecialty(ctx, specialty, faqSpecialtyPoolSize)
		if err != nil {
			logger.Warn().Str("specialty", specialty).Err(err).Msg("specialty provider retrieval failed")
			break
		}
		sample := matched
		if len(sample) > faqSampleSize {
			sample = sample[:faqSampleSize]
		}
		facts.SpecialtyProviders = &entities.SpecialtyProviderSet{
			Specialty: specialty,
			Count:     s.specialtyCount(ctx, specialty, len(matched)),
			Sample:    sample,
		}
		break
	}

	if state := mentionedState(question); state != "" {
		if count, ok := s.stateCount(ctx, state); ok {
			facts.StateProviders = &entities.StateProviderSet{
				State: state,
				Count: count,
			}
		}
	}

	return facts
}

// specialtyCount returns the network-wide provider count for the
// specialty from the distribution aggregate. The retrieval pool is
// capped, so its length understates large specialties; it serves only
// as the fallback when the aggregate is unavailable.
func (s *FAQService) specialtyCount(ctx context.Context, specialty string, fallback int) int {
	counts, err := s.repo.SpecialtyDistribution(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Str("specialty", specialty).Err(err).Msg("specialty distribution retrieval failed")
		return fallback
	}
	for _, c := range counts {
		if strings.EqualFold(c.Specialty, specialty) {
			return c.ProviderCount
		}
	}
	return fallback
}

func (s *FAQService) stateCount(ctx context.Context, state string) (int, bool) {
	counts, err := s.repo.StateDistribution(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Str("state", state).Err(err).Msg("state distribution retrieval failed")
		return 0, false
	}
	for _, c := range counts {
		if strings.EqualFold(c.State, state) {
			return c.ProviderCount, true
		}
	}
	return 0, true
}

func (s *FAQService) suggestFollowUps(ctx context.Context, question, answer string) []string {
	raw, err := s.generator.Complete(ctx, s.composer.FollowUps(ctx, question, answer))
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("follow-up suggestion generation failed")
		return []string{}
	}
	suggestions := parsing.ParseFollowUps(raw, maxFollowUps)
	if suggestions == nil {
		return []string{}
	}
	return suggestions
}

// mentionedState scans question words for a coverage state code. Codes
// must stand alone as words so that, say, "cardiology" never reads as
// CA.
func mentionedState(question string) string {
	for _, word := range strings.Fields(question) {
		word = strings.ToUpper(strings.Trim(word, ".,!?;:()\"'"))
		for _, state := range faqStates {
			if word == state {
				return state
			}
		}
	}
	return ""
}
