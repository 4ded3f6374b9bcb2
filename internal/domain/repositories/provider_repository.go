package repositories

import (
	"context"

	"github.com/providervault/ai-service/internal/domain/entities"
)

// ProviderRepository is the read-only view of the provider store used
// for grounding-fact retrieval. Implementations never mutate data; an
// unreachable store surfaces as a DATA_UNAVAILABLE error.
type ProviderRepository interface {
	// GetByNPI retrieves a single provider by National Provider Identifier.
	GetByNPI(ctx context.Context, npi string) (*entities.Provider, error)

	// ListBySpecialty retrieves providers matching a specialty name,
	// case-insensitively.
	ListBySpecialty(ctx context.Context, specialty string, limit int) ([]entities.Provider, error)

	// ListByState retrieves providers in a two-letter state code.
	ListByState(ctx context.Context, state string, limit int) ([]entities.Provider, error)

	// SpecialtyDistribution returns provider counts grouped by specialty,
	// most frequent first.
	SpecialtyDistribution(ctx context.Context) ([]entities.SpecialtyCount, error)

	// StateDistribution returns provider counts grouped by state, most
	// frequent first.
	StateDistribution(ctx context.Context) ([]entities.StateCount, error)

	// ListSpecialties returns all distinct specialty names in order.
	ListSpecialties(ctx context.Context) ([]string, error)

	// Stats returns the aggregate network counts.
	Stats(ctx context.Context) (*entities.NetworkStats, error)
}

// ProviderSearchRepository is the keyword index over providers used by
// semantic search as a retrieval accelerator. The Postgres repository
// remains the source of truth; the index is populated out-of-band.
type ProviderSearchRepository interface {
	// Search returns providers matching any of the given specialties or
	// free-text terms, best matches first.
	Search(ctx context.Context, specialties []string, terms []string, limit int) ([]entities.Provider, error)

	// Index upserts one provider document into the keyword index.
	Index(ctx context.Context, provider *entities.Provider) error

	// InitSchema ensures the provider collection exists.
	InitSchema(ctx context.Context) error
}
