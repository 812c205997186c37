package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/pkg/database"
)

// PostgresGeographyRepository implements domain.GeographyRepository over
// the countries_t/states_t/cities_t chain. Read-only.
type PostgresGeographyRepository struct {
	pool   *database.ConnectionPool
	logger *slog.Logger
}

// NewPostgresGeographyRepository creates a new geography repository.
func NewPostgresGeographyRepository(pool *database.ConnectionPool, logger *slog.Logger) *PostgresGeographyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGeographyRepository{pool: pool, logger: logger}
}

// ListCountries retrieves all countries.
func (r *PostgresGeographyRepository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	rows, err := r.pool.Querier(ctx).QueryContext(ctx,
		`SELECT id, shortname, name FROM countries_t ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	var countries []*domain.Country
	for rows.Next() {
		c := &domain.Country{}
		if err := rows.Scan(&c.ID, &c.ShortName, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}

// ListStatesByCountry retrieves the states of one country.
func (r *PostgresGeographyRepository) ListStatesByCountry(ctx context.Context, countryID int64) ([]*domain.State, error) {
	rows, err := r.pool.Querier(ctx).QueryContext(ctx,
		`SELECT id, name, country_id FROM states_t WHERE country_id = $1 ORDER BY name`, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer rows.Close()

	var states []*domain.State
	for rows.Next() {
		s := &domain.State{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CountryID); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, s)
	}

	return states, rows.Err()
}

// ListCitiesByState retrieves the cities of one state.
func (r *PostgresGeographyRepository) ListCitiesByState(ctx context.Context, stateID int64) ([]*domain.City, error) {
	rows, err := r.pool.Querier(ctx).QueryContext(ctx,
		`SELECT id, name, state_id FROM cities_t WHERE state_id = $1 ORDER BY name`, stateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		c := &domain.City{}
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}

	return cities, rows.Err()
}
