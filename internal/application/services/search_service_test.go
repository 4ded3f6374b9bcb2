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

const memorySearchOutput = `INTENT: Patient seeking help for a parent's memory decline
KEY_TERMS: memory, dementia, cognitive decline
SPECIALTIES: Neurology, Geriatric Medicine`

func TestSearch_RankedByRecommendedSpecialtyOrder(t *testing.T) {
	repo := &fakeProviderRepo{providers: []entities.Provider{
		{NPI: "g1", Name: "Grey", Specialty: "Geriatric Medicine", State: "CA"},
		{NPI: "n1", Name: "North", Specialty: "Neurology", State: "TX"},
		{NPI: "n2", Name: "Nolan", Specialty: "Neurology", State: "CA"},
	}}
	gen := &scriptedGenerator{responses: []string{memorySearchOutput}}
	svc := NewSearchService(repo, nil, prompts.NewComposer(), gen)

	result, err := svc.Search(context.Background(), "help with my parent's memory problems", 10)

	assert.NoError(t, err)
	assert.Equal(t, "Patient seeking help for a parent's memory decline", result.UnderstoodIntent)
	assert.Equal(t, []string{"Neurology", "Geriatric Medicine"}, result.RecommendedSpecialties)
	assert.Equal(t, 3, result.TotalFound)

	// Neurology providers rank before geriatric medicine
	assert.Equal(t, "Neurology", result.Providers[0].Specialty)
	assert.Equal(t, "Neurology", result.Providers[1].Specialty)
	assert.Equal(t, "Geriatric Medicine", result.Providers[2].Specialty)
}

func TestSearch_LimitCapsResultsButNotTotal(t *testing.T) {
	repo := &fakeProviderRepo{providers: []entities.Provider{
		{NPI: "n1", Specialty: "Neurology"},
		{NPI: "n2", Specialty: "Neurology"},
		{NPI: "g1", Specialty: "Geriatric Medicine"},
	}}
	gen := &scriptedGenerator{responses: []string{memorySearchOutput}}
	svc := NewSearchService(repo, nil, prompts.NewComposer(), gen)

	result, err := svc.Search(context.Background(), "memory problems", 2)

	assert.NoError(t, err)
	assert.Len(t, result.Providers, 2)
	assert.Equal(t, 3, result.TotalFound)
}

func TestSearch_DeduplicatesByNPI(t *testing.T) {
	// Same provider indexed under both recommended specialties
	shared := entities.Provider{NPI: "x1", Name: "Cross", Specialty: "Neurology"}
	searchRepo := &fakeSearchRepo{hits: map[string][]entities.Provider{
		"Neurology":          {shared},
		"Geriatric Medicine": {shared, {NPI: "g1", Specialty: "Geriatric Medicine"}},
	}}
	gen := &scriptedGenerator{responses: []string{memorySearchOutput}}
	svc := NewSearchService(&fakeProviderRepo{}, searchRepo, prompts.NewComposer(), gen)

	result, err := svc.Search(context.Background(), "memory problems", 10)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalFound)
	assert.Equal(t, "x1", result.Providers[0].NPI)
}

func TestSearch_IndexHitsHydratedFromStore(t *testing.T) {
	// The index document has no address or phone; the store row does.
	repo := &fakeProviderRepo{providers: []entities.Provider{
		{NPI: "n1", Name: "North", Specialty: "Neurology", State: "TX", City: "Austin",
			Address: "600 Congress Ave", Phone: "512-555-0147"},
	}}
	searchRepo := &fakeSearchRepo{hits: map[string][]entities.Provider{
		"Neurology": {{NPI: "n1", Name: "North", Specialty: "Neurology", State: "TX", City: "Austin"}},
	}}
	gen := &scriptedGenerator{responses: []string{memorySearchOutput}}
	svc := NewSearchService(repo, searchRepo, prompts.NewComposer(), gen)

	result, err := svc.Search(context.Background(), "memory problems", 10)

	assert.NoError(t, err)
	if assert.Len(t, result.Providers, 1) {
		assert.Equal(t, "600 Congress Ave", result.Providers[0].Address)
		assert.Equal(t, "512-555-0147", result.Providers[0].Phone)
	}
}

func TestSearch_IndexFailureFallsBackToStore(t *testing.T) {
	repo := &fakeProviderRepo{providers: []entities.Provider{
		{NPI: "n1", Specialty: "Neurology"},
	}}
	searchRepo := &fakeSearchRepo{failWith: errors.New("index down")}
	gen := &scriptedGenerator{responses: []string{memorySearchOutput}}
	svc := NewSearchService(repo, searchRepo, prompts.NewComposer(), gen)

	result, err := svc.Search(context.Background(), "memory problems", 10)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalFound)
	assert.Greater(t, searchRepo.queries, 0, "index was tried first")
}

func TestSearch_EmptyResultIsValid(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{memorySearchOutput}}
	svc := NewSearchService(&fakeProviderRepo{}, nil, prompts.NewComposer(), gen)

	result, err := svc.Search(context.Background(), "memory problems", 10)

	assert.NoError(t, err)
	assert.Empty(t, result.Providers)
	assert.Equal(t, 0, result.TotalFound)
}

func TestSearch_ValidationBeforeModelCall(t *testing.T) {
	gen := &scriptedGenerator{}
	svc := NewSearchService(&fakeProviderRepo{}, nil, prompts.NewComposer(), gen)

	_, err := svc.Search(context.Background(), "", 10)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Search(context.Background(), "memory problems", 101)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Search(context.Background(), "memory problems", -5)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	assert.Equal(t, 0, gen.calls(), "invalid parameters must never reach the model")
}

func TestSearch_MissingSpecialtiesIsMalformed(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"INTENT: something\nKEY_TERMS: a, b"}}
	svc := NewSearchService(&fakeProviderRepo{}, nil, prompts.NewComposer(), gen)

	_, err := svc.Search(context.Background(), "memory problems", 10)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMalformedResponse))
}
