package domain

import "context"

// Geography lookups are read-mostly reference data.

type Country struct {
	ID        int64  `json:"id"`
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
}

type State struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

type City struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StateID int64  `json:"state_id"`
}

// GeographyRepository defines read access to the city/state/country chain.
type GeographyRepository interface {
	ListCountries(ctx context.Context) ([]*Country, error)
	ListStatesByCountry(ctx context.Context, countryID int64) ([]*State, error)
	ListCitiesByState(ctx context.Context, stateID int64) ([]*City, error)
}
