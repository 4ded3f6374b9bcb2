package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/providervault/ai-service/internal/application/prompts"
	"github.com/providervault/ai-service/internal/domain/entities"
	apperrors "github.com/providervault/ai-service/pkg/errors"
)

func faqNetwork() *fakeProviderRepo {
	return &fakeProviderRepo{
		stats:       &entities.NetworkStats{TotalProviders: 1000, TotalSpecialties: 12, TotalStates: 10},
		specialties: []string{"Cardiology", "Dermatology", "Neurology"},
		providers: []entities.Provider{
			{NPI: "1", Name: "Adams", Specialty: "Cardiology", State: "TX", City: "Austin"},
			{NPI: "2", Name: "Baker", Specialty: "Cardiology", State: "TX", City: "Dallas"},
			{NPI: "3", Name: "Chen", Specialty: "Neurology", State: "CA", City: "Fresno"},
		},
	}
}

func TestAsk(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"We have 2 cardiology providers in our network.",
		"- How many are in Texas?\n- What does a cardiologist treat?",
	}}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	result, err := svc.Ask(context.Background(), "Tell me about your cardiology coverage", nil)

	assert.NoError(t, err)
	assert.Contains(t, result.Answer, "2 cardiology providers")
	assert.Len(t, result.FollowUpSuggestions, 2)

	// The mentioned specialty was retrieved and grounded into the prompt
	if assert.NotNil(t, result.DataRetrieved.SpecialtyProviders) {
		assert.Equal(t, "Cardiology", result.DataRetrieved.SpecialtyProviders.Specialty)
		assert.Equal(t, 2, result.DataRetrieved.SpecialtyProviders.Count)
	}
	assert.Contains(t, gen.requests[0].System, "2 Cardiology providers")
}

func TestAsk_SpecialtyCountComesFromNetworkAggregate(t *testing.T) {
	repo := faqNetwork()
	for i := 0; i < 12; i++ {
		repo.providers = append(repo.providers, entities.Provider{
			NPI: string(rune('a' + i)), Name: "Doc", Specialty: "Dermatology", State: "CA",
		})
	}
	gen := &scriptedGenerator{responses: []string{"We cover dermatology well.", "- More?"}}
	svc := NewFAQService(repo, prompts.NewComposer(), gen)

	result, err := svc.Ask(context.Background(), "Do you have dermatology providers?", nil)

	assert.NoError(t, err)
	// The count reflects the whole network, not the capped retrieval
	// pool the sample is drawn from.
	if assert.NotNil(t, result.DataRetrieved.SpecialtyProviders) {
		assert.Equal(t, 12, result.DataRetrieved.SpecialtyProviders.Count)
		assert.Len(t, result.DataRetrieved.SpecialtyProviders.Sample, faqSampleSize)
	}
}

func TestAsk_StateMentionGroundsLocationData(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"We have 2 providers in TX.", "- More?"}}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	result, err := svc.Ask(context.Background(), "How many providers do you have in TX?", nil)

	assert.NoError(t, err)
	if assert.NotNil(t, result.DataRetrieved.StateProviders) {
		assert.Equal(t, "TX", result.DataRetrieved.StateProviders.State)
		assert.Equal(t, 2, result.DataRetrieved.StateProviders.Count)
	}
}

func TestAsk_StateCodesMatchWholeWordsOnly(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Answer.", "- More?"}}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	// "care" and "gap" must not read as CA or GA
	result, err := svc.Ask(context.Background(), "Is there a gap in primary care?", nil)

	assert.NoError(t, err)
	assert.Nil(t, result.DataRetrieved.StateProviders)
}

func TestAsk_HistoryRoundTrip(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"About 120 in Texas.", "- More?"}}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	history := []entities.ConversationTurn{
		{Role: entities.RoleUser, Text: "How many cardiologists do you have?"},
		{Role: entities.RoleAssistant, Text: "We have 85 cardiologists."},
	}

	result, err := svc.Ask(context.Background(), "What about in TX?", history)

	assert.NoError(t, err)
	// Prior turns were threaded into the model request verbatim
	assert.Equal(t, history, gen.requests[0].History)
	// Updated history is prior turns plus this exchange
	if assert.Len(t, result.ConversationHistory, 4) {
		assert.Equal(t, "What about in TX?", result.ConversationHistory[2].Text)
		assert.Equal(t, "About 120 in Texas.", result.ConversationHistory[3].Text)
	}
	// Caller's slice is untouched
	assert.Len(t, history, 2)
}

func TestAsk_HistoryWindowApplied(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Answer.", "- More?"}}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	history := make([]entities.ConversationTurn, 0, 12)
	for i := 0; i < 12; i++ {
		history = append(history, entities.ConversationTurn{Role: entities.RoleUser, Text: "old"})
	}

	result, err := svc.Ask(context.Background(), "latest question", history)

	assert.NoError(t, err)
	assert.Len(t, result.ConversationHistory, entities.DefaultConversationWindow)
	assert.Equal(t, "Answer.", result.ConversationHistory[entities.DefaultConversationWindow-1].Text)
}

func TestAsk_DegradedStoreStillAnswers(t *testing.T) {
	repo := &fakeProviderRepo{failWith: apperrors.NewDataUnavailableError("down", nil)}
	gen := &scriptedGenerator{responses: []string{"I don't have live data right now.", "- More?"}}
	svc := NewFAQService(repo, prompts.NewComposer(), gen)

	result, err := svc.Ask(context.Background(), "How many providers do you have?", nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Answer)
	assert.Nil(t, result.DataRetrieved.Stats)
}

func TestAsk_FollowUpFailureTolerated(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"The answer."}}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	result, err := svc.Ask(context.Background(), "How many providers?", nil)

	assert.NoError(t, err)
	assert.Equal(t, "The answer.", result.Answer)
	assert.Empty(t, result.FollowUpSuggestions)
}

func TestAsk_EmptyQuestionRejected(t *testing.T) {
	gen := &scriptedGenerator{}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	_, err := svc.Ask(context.Background(), " ", nil)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, 0, gen.calls())
}

func TestAsk_GenerationFailureSurfaces(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("model down")}
	svc := NewFAQService(faqNetwork(), prompts.NewComposer(), gen)

	_, err := svc.Ask(context.Background(), "How many providers?", nil)

	assert.Error(t, err)
}
