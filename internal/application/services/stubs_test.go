package services

import (
	"context"
	"errors"
	"strings"

	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/providers"
)

// scriptedGenerator returns canned model outputs in order and records
// every request it saw. No test in this package touches the network.
type scriptedGenerator struct {
	responses []string
	err       error
	requests  []providers.CompletionRequest
}

func (g *scriptedGenerator) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	if len(g.requests) > len(g.responses) {
		return "", errors.New("no scripted response left")
	}
	return g.responses[len(g.requests)-1], nil
}

func (g *scriptedGenerator) calls() int { return len(g.requests) }

// fakeProviderRepo serves a fixed provider set.
type fakeProviderRepo struct {
	providers   []entities.Provider
	specialties []string
	stats       *entities.NetworkStats
	failWith    error
}

func (r *fakeProviderRepo) GetByNPI(ctx context.Context, npi string) (*entities.Provider, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, p := range r.providers {
		if p.NPI == npi {
			return &p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeProviderRepo) ListBySpecialty(ctx context.Context, specialty string, limit int) ([]entities.Provider, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var matched []entities.Provider
	for _, p := range r.providers {
		if strings.EqualFold(p.Specialty, specialty) {
			matched = append(matched, p)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func (r *fakeProviderRepo) ListByState(ctx context.Context, state string, limit int) ([]entities.Provider, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var matched []entities.Provider
	for _, p := range r.providers {
		if p.State == state {
			matched = append(matched, p)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func (r *fakeProviderRepo) SpecialtyDistribution(ctx context.Context) ([]entities.SpecialtyCount, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	tally := map[string]int{}
	for _, p := range r.providers {
		tally[p.Specialty]++
	}
	var counts []entities.SpecialtyCount
	for specialty, n := range tally {
		counts = append(counts, entities.SpecialtyCount{Specialty: specialty, ProviderCount: n})
	}
	return counts, nil
}

func (r *fakeProviderRepo) StateDistribution(ctx context.Context) ([]entities.StateCount, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	tally := map[string]int{}
	for _, p := range r.providers {
		tally[p.State]++
	}
	var counts []entities.StateCount
	for state, n := range tally {
		counts = append(counts, entities.StateCount{State: state, ProviderCount: n})
	}
	return counts, nil
}

func (r *fakeProviderRepo) ListSpecialties(ctx context.Context) ([]string, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.specialties, nil
}

func (r *fakeProviderRepo) Stats(ctx context.Context) (*entities.NetworkStats, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.stats, nil
}

// fakeSearchRepo serves a fixed hit list, or fails.
type fakeSearchRepo struct {
	hits     map[string][]entities.Provider
	failWith error
	queries  int
}

func (r *fakeSearchRepo) Search(ctx context.Context, specialties []string, terms []string, limit int) ([]entities.Provider, error) {
	r.queries++
	if r.failWith != nil {
		return nil, r.failWith
	}
	var matched []entities.Provider
	for _, s := range specialties {
		matched = append(matched, r.hits[s]...)
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeSearchRepo) Index(ctx context.Context, provider *entities.Provider) error {
	return nil
}

func (r *fakeSearchRepo) InitSchema(ctx context.Context) error {
	return nil
}
