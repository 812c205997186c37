package domain

import (
	"context"
	"time"
)

// Organization is one employment entry on a user's profile.
// DurationTo may precede DurationFrom; the original schema never
// validated the ordering and this port keeps that behavior.
type Organization struct {
	ID           int64
	Name         string
	Address      string
	CityID       *int64
	DurationFrom *time.Time
	DurationTo   *time.Time
	IsCurrent    bool
	UserID       int64
	PositionID   *int64
	TeamID       *int64
}

// Position is reference data for job titles.
type Position struct {
	ID        int64
	ShortName string
	Name      string
}

// Team is reference data for org units.
type Team struct {
	ID        int64
	ShortName string
	Name      string
}

// OrganizationRepository defines data access for organizations.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id int64) (*Organization, error)
	GetByUserID(ctx context.Context, userID int64) ([]*Organization, error)
	Create(ctx context.Context, o *Organization) error
	Update(ctx context.Context, o *Organization) error
}
