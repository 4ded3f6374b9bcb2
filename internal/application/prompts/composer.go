package prompts

import (
	"context"

	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/providers"
	"github.com/providervault/ai-service/internal/infrastructure/observability"
)

// Per-intent generation presets. Safety-critical triage runs coldest;
// conversational answers warmest. The generation client clamps these to
// its configured ceilings.
const (
	describeTemperature = 0.7
	describeMaxTokens   = 300

	relatedTemperature = 0.5
	relatedMaxTokens   = 250

	analyzeTemperature = 0.6
	analyzeMaxTokens   = 350

	triageTemperature = 0.3
	triageMaxTokens   = 300

	searchTemperature = 0.4
	searchMaxTokens   = 250

	faqTemperature = 0.7
	faqMaxTokens   = 400

	followUpTemperature = 0.6
	followUpMaxTokens   = 150
)

// Composer builds deterministic, fully-formed model requests per
// intent. Same inputs always produce the same request; all caller text
// is run through the delimiter sanitizer before template insertion.
type Composer struct{}

// NewComposer creates a prompt composer
func NewComposer() *Composer {
	return &Composer{}
}

// DescribeSpecialty composes the specialty description request
func (c *Composer) DescribeSpecialty(ctx context.Context, specialty string) providers.CompletionRequest {
	return providers.CompletionRequest{
		System:      describeSystem,
		User:        describePrompt(c.clean(ctx, specialty)),
		Temperature: describeTemperature,
		MaxTokens:   describeMaxTokens,
	}
}

// RelatedSpecialties composes the referral suggestion request
func (c *Composer) RelatedSpecialties(ctx context.Context, specialty string, count int) providers.CompletionRequest {
	return providers.CompletionRequest{
		System:      relatedSystem,
		User:        relatedPrompt(c.clean(ctx, specialty), count),
		Temperature: relatedTemperature,
		MaxTokens:   relatedMaxTokens,
	}
}

// AnalyzeDistribution composes the distribution analysis request from
// retrieved grounding facts.
func (c *Composer) AnalyzeDistribution(ctx context.Context, facts *entities.GroundingFacts, providerCount int) providers.CompletionRequest {
	return providers.CompletionRequest{
		System:      analyzeSystem,
		User:        analyzePrompt(facts, providerCount),
		Temperature: analyzeTemperature,
		MaxTokens:   analyzeMaxTokens,
	}
}

// RecommendBySymptoms composes the symptom triage request
func (c *Composer) RecommendBySymptoms(ctx context.Context, symptoms string) providers.CompletionRequest {
	return providers.CompletionRequest{
		System:      triageSystem,
		User:        triagePrompt(c.clean(ctx, symptoms)),
		Temperature: triageTemperature,
		MaxTokens:   triageMaxTokens,
	}
}

// SemanticSearch composes the query understanding request
func (c *Composer) SemanticSearch(ctx context.Context, query string) providers.CompletionRequest {
	return providers.CompletionRequest{
		System:      searchSystem,
		User:        searchPrompt(c.clean(ctx, query)),
		Temperature: searchTemperature,
		MaxTokens:   searchMaxTokens,
	}
}

// FAQ composes the conversational answer request with retrieved network
// facts in the system prompt and the caller's history threaded through.
func (c *Composer) FAQ(ctx context.Context, question string, facts *entities.GroundingFacts, history []entities.ConversationTurn) providers.CompletionRequest {
	return providers.CompletionRequest{
		System:      faqSystemPrompt(facts),
		History:     entities.WindowTurns(history, entities.DefaultConversationWindow),
		User:        c.clean(ctx, question),
		Temperature: faqTemperature,
		MaxTokens:   faqMaxTokens,
	}
}

// FollowUps composes the follow-up suggestion request for a completed
// FAQ exchange.
func (c *Composer) FollowUps(ctx context.Context, question, answer string) providers.CompletionRequest {
	return providers.CompletionRequest{
		System:      followUpSystem,
		User:        followUpPrompt(c.clean(ctx, question), answer),
		Temperature: followUpTemperature,
		MaxTokens:   followUpMaxTokens,
	}
}

func (c *Composer) clean(ctx context.Context, text string) string {
	cleaned, flagged := sanitize(text)
	if flagged {
		observability.LoggerFromContext(ctx).Warn().Msg("delimiter token in caller text neutralized")
	}
	return cleaned
}
