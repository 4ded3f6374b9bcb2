package database

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/providers"
	"github.com/providervault/ai-service/internal/domain/repositories"
)

const (
	statsCacheKey       = "providers:stats"
	specialtiesCacheKey = "providers:specialties"

	// Aggregates change only when the provider table is reloaded, so a
	// short TTL is enough to absorb repeated grounding-fact reads.
	aggregateCacheTTLSeconds = 300
)

// CachedProviderAdapter decorates a ProviderRepository with caching for
// the aggregate reads that back nearly every prompt. Cache failures are
// logged and ignored; the wrapped repository remains the source of
// truth.
type CachedProviderAdapter struct {
	repositories.ProviderRepository
	cache providers.CacheProvider
}

// NewCachedProviderAdapter wraps a provider repository with an
// aggregate-read cache.
func NewCachedProviderAdapter(repo repositories.ProviderRepository, cache providers.CacheProvider) repositories.ProviderRepository {
	return &CachedProviderAdapter{
		ProviderRepository: repo,
		cache:              cache,
	}
}

// Stats returns the aggregate network counts, cached
func (a *CachedProviderAdapter) Stats(ctx context.Context) (*entities.NetworkStats, error) {
	if data, err := a.cache.Get(ctx, statsCacheKey); err == nil {
		var stats entities.NetworkStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := a.ProviderRepository.Stats(ctx)
	if err != nil {
		return nil, err
	}

	a.store(ctx, statsCacheKey, stats)
	return stats, nil
}

// ListSpecialties returns all distinct specialty names, cached
func (a *CachedProviderAdapter) ListSpecialties(ctx context.Context) ([]string, error) {
	if data, err := a.cache.Get(ctx, specialtiesCacheKey); err == nil {
		var specialties []string
		if err := json.Unmarshal(data, &specialties); err == nil {
			return specialties, nil
		}
	}

	specialties, err := a.ProviderRepository.ListSpecialties(ctx)
	if err != nil {
		return nil, err
	}

	a.store(ctx, specialtiesCacheKey, specialties)
	return specialties, nil
}

func (a *CachedProviderAdapter) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, aggregateCacheTTLSeconds); err != nil {
		log.Debug().Str("key", key).Err(err).Msg("cache write failed")
	}
}
