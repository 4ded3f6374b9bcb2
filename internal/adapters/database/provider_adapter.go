package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/providervault/ai-service/internal/domain/entities"
	"github.com/providervault/ai-service/internal/domain/repositories"
	"github.com/providervault/ai-service/internal/infrastructure/clients/postgres"
	"github.com/providervault/ai-service/internal/infrastructure/observability"
	apperrors "github.com/providervault/ai-service/pkg/errors"
)

const providersTable = "providers"

// ProviderAdapter implements ProviderRepository over the read-only
// providers table.
type ProviderAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewProviderAdapter creates a new provider adapter. metrics may be
// nil when no meter is configured.
func NewProviderAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.ProviderRepository {
	return &ProviderAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

func (a *ProviderAdapter) observe(ctx context.Context, operation string, start time.Time) {
	observability.RecordDBMetric(ctx, a.metrics, operation, time.Since(start))
}

// GetByNPI retrieves a single provider by NPI
func (a *ProviderAdapter) GetByNPI(ctx context.Context, npi string) (*entities.Provider, error) {
	defer a.observe(ctx, "providers.get_by_npi", time.Now())

	query, args, err := a.selectProviders().
		Where(goqu.Ex{"npi": npi}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	provider, err := scanProvider(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("provider not found: " + npi)
		}
		return nil, apperrors.NewDataUnavailableError("failed to get provider by npi", err)
	}

	return provider, nil
}

// ListBySpecialty retrieves providers whose specialty matches the given
// name, case-insensitively.
func (a *ProviderAdapter) ListBySpecialty(ctx context.Context, specialty string, limit int) ([]entities.Provider, error) {
	defer a.observe(ctx, "providers.list_by_specialty", time.Now())

	query, args, err := a.selectProviders().
		Where(goqu.C("specialty").ILike(escapeLike(specialty))).
		Order(goqu.C("name").Asc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryProviders(ctx, query, args, "failed to list providers by specialty")
}

// ListByState retrieves providers in a two-letter state code
func (a *ProviderAdapter) ListByState(ctx context.Context, state string, limit int) ([]entities.Provider, error) {
	defer a.observe(ctx, "providers.list_by_state", time.Now())

	query, args, err := a.selectProviders().
		Where(goqu.Ex{"state": state}).
		Order(goqu.C("name").Asc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryProviders(ctx, query, args, "failed to list providers by state")
}

// SpecialtyDistribution returns provider counts grouped by specialty,
// most frequent first
func (a *ProviderAdapter) SpecialtyDistribution(ctx context.Context) ([]entities.SpecialtyCount, error) {
	defer a.observe(ctx, "providers.specialty_distribution", time.Now())

	query, args, err := a.db.Select(
		goqu.C("specialty"),
		goqu.COUNT("*").As("provider_count"),
	).From(providersTable).
		GroupBy("specialty").
		Order(goqu.I("provider_count").Desc(), goqu.C("specialty").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError("failed to get specialty distribution", err)
	}
	defer rows.Close()

	var counts []entities.SpecialtyCount
	for rows.Next() {
		var c entities.SpecialtyCount
		if err := rows.Scan(&c.Specialty, &c.ProviderCount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan specialty count", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataUnavailableError("failed to read specialty distribution", err)
	}

	return counts, nil
}

// StateDistribution returns provider counts grouped by state, most
// frequent first
func (a *ProviderAdapter) StateDistribution(ctx context.Context) ([]entities.StateCount, error) {
	defer a.observe(ctx, "providers.state_distribution", time.Now())

	query, args, err := a.db.Select(
		goqu.C("state"),
		goqu.COUNT("*").As("provider_count"),
	).From(providersTable).
		GroupBy("state").
		Order(goqu.I("provider_count").Desc(), goqu.C("state").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError("failed to get state distribution", err)
	}
	defer rows.Close()

	var counts []entities.StateCount
	for rows.Next() {
		var c entities.StateCount
		if err := rows.Scan(&c.State, &c.ProviderCount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan state count", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataUnavailableError("failed to read state distribution", err)
	}

	return counts, nil
}

// ListSpecialties returns all distinct specialty names in order
func (a *ProviderAdapter) ListSpecialties(ctx context.Context) ([]string, error) {
	defer a.observe(ctx, "providers.list_specialties", time.Now())

	query, args, err := a.db.Select(goqu.C("specialty")).
		Distinct().
		From(providersTable).
		Order(goqu.C("specialty").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError("failed to list specialties", err)
	}
	defer rows.Close()

	var specialties []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.NewInternalError("failed to scan specialty", err)
		}
		specialties = append(specialties, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataUnavailableError("failed to read specialties", err)
	}

	return specialties, nil
}

// Stats returns the aggregate network counts
func (a *ProviderAdapter) Stats(ctx context.Context) (*entities.NetworkStats, error) {
	defer a.observe(ctx, "providers.stats", time.Now())

	query, args, err := a.db.Select(
		goqu.COUNT("*").As("total_providers"),
		goqu.COUNT(goqu.DISTINCT("specialty")).As("total_specialties"),
		goqu.COUNT(goqu.DISTINCT("state")).As("total_states"),
	).From(providersTable).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	stats := &entities.NetworkStats{}
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.TotalProviders, &stats.TotalSpecialties, &stats.TotalStates); err != nil {
		return nil, apperrors.NewDataUnavailableError("failed to get network stats", err)
	}

	return stats, nil
}

func (a *ProviderAdapter) selectProviders() *goqu.SelectDataset {
	return a.db.Select(
		"npi", "name", "specialty", "state", "city", "address", "phone",
	).From(providersTable)
}

func (a *ProviderAdapter) queryProviders(ctx context.Context, query string, args []interface{}, failMsg string) ([]entities.Provider, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(failMsg, err)
	}
	defer rows.Close()

	var providers []entities.Provider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider", err)
		}
		providers = append(providers, *provider)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataUnavailableError(failMsg, err)
	}

	return providers, nil
}

// escapeLike neutralizes LIKE metacharacters so user-supplied text
// compares literally under ILIKE. Postgres treats backslash as the
// default escape character.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row rowScanner) (*entities.Provider, error) {
	provider := &entities.Provider{}
	var address, phone sql.NullString

	err := row.Scan(
		&provider.NPI,
		&provider.Name,
		&provider.Specialty,
		&provider.State,
		&provider.City,
		&address,
		&phone,
	)
	if err != nil {
		return nil, err
	}

	provider.Address = address.String
	provider.Phone = phone.String

	return provider, nil
}
