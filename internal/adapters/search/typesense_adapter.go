package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/repositories"
	tsclient "github.com/providervault/ai-service/internal/infrastructure/clients/typesense"
)

// ProvidersCollection is the Typesense collection holding provider documents.
const ProvidersCollection = "providers"

// TypesenseAdapter implements provider keyword search using Typesense

type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ProviderSearchRepository
var _ repositories.ProviderSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the provider collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(ProvidersCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: ProvidersCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "npi", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "specialty", Type: "string", Facet: pointer.True()},
			{Name: "state", Type: "string", Facet: pointer.True()},
			{Name: "city", Type: "string"},
		},
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts one provider document into the keyword index
func (a *TypesenseAdapter) Index(ctx context.Context, provider *entities.Provider) error {
	document := map[string]interface{}{
		"id":        provider.NPI,
		"npi":       provider.NPI,
		"name":      provider.Name,
		"specialty": provider.Specialty,
		"state":     provider.State,
		"city":      provider.City,
	}

	_, err := a.client.Client().Collection(ProvidersCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index provider: %w", err)
	}

	return nil
}

// Search returns providers matching any of the given specialties or
// free-text terms, best matches first.
func (a *TypesenseAdapter) Search(ctx context.Context, specialties []string, terms []string, limit int) ([]entities.Provider, error) {
	query := strings.TrimSpace(strings.Join(terms, " "))
	if query == "" {
		query = "*"
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("specialty,name,city"),
		PerPage: pointer.Int(limit),
	}
	if len(specialties) > 0 {
		quoted := make([]string, 0, len(specialties))
		for _, s := range specialties {
			quoted = append(quoted, fmt.Sprintf("`%s`", s))
		}
		searchParams.FilterBy = pointer.String(fmt.Sprintf("specialty:[%s]", strings.Join(quoted, ",")))
	}

	result, err := a.client.Client().Collection(ProvidersCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}

	providers := []entities.Provider{}
	if result.Hits == nil {
		return providers, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense returns map[string]interface{}, so cast safely
		provider := entities.Provider{}
		if val, ok := doc["npi"].(string); ok {
			provider.NPI = val
		}
		if val, ok := doc["name"].(string); ok {
			provider.Name = val
		}
		if val, ok := doc["specialty"].(string); ok {
			provider.Specialty = val
		}
		if val, ok := doc["state"].(string); ok {
			provider.State = val
		}
		if val, ok := doc["city"].(string); ok {
			provider.City = val
		}

		providers = append(providers, provider)
	}

	return providers, nil
}
