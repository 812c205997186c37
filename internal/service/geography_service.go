package service

import (
	"context"

	"github.com/localite/user-service/internal/domain"
)

// GeographyService exposes the read-only geography reference data.
type GeographyService struct {
	geo domain.GeographyRepository
}

// NewGeographyService creates a new geography service.
func NewGeographyService(geo domain.GeographyRepository) *GeographyService {
	return &GeographyService{geo: geo}
}

// Countries lists all countries.
func (s *GeographyService) Countries(ctx context.Context) ([]*domain.Country, error) {
	out, err := s.geo.ListCountries(ctx)
	if err != nil {
		return nil, domain.Database("An error occurred while listing countries.", err)
	}
	return out, nil
}

// States lists the states of a country.
func (s *GeographyService) States(ctx context.Context, countryID int64) ([]*domain.State, error) {
	out, err := s.geo.ListStatesByCountry(ctx, countryID)
	if err != nil {
		return nil, domain.Database("An error occurred while listing states.", err)
	}
	return out, nil
}

// Cities lists the cities of a state.
func (s *GeographyService) Cities(ctx context.Context, stateID int64) ([]*domain.City, error) {
	out, err := s.geo.ListCitiesByState(ctx, stateID)
	if err != nil {
		return nil, domain.Database("An error occurred while listing cities.", err)
	}
	return out, nil
}
