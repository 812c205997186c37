package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/localite/user-service/internal/domain"
)

// OrganizationRequest carries the validated fields for organization
// create and update. ID is zero on create.
type OrganizationRequest struct {
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

// OrganizationData is the organization projection nested under users.
type OrganizationData struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	CityID       *int64     `json:"city_id"`
	DurationFrom *time.Time `json:"duration_from"`
	DurationTo   *time.Time `json:"duration_to"`
	IsCurrent    bool       `json:"is_current_organization"`
}

// OrganizationService handles organization business logic.
type OrganizationService struct {
	users  domain.UserRepository
	orgs   domain.OrganizationRepository
	tx     domain.TxRunner
	logger *slog.Logger
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(
	users domain.UserRepository,
	orgs domain.OrganizationRepository,
	tx domain.TxRunner,
	logger *slog.Logger,
) *OrganizationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrganizationService{users: users, orgs: orgs, tx: tx, logger: logger}
}

// Create verifies the referenced user exists, then persists the
// organization. The user check runs before any write.
func (s *OrganizationService) Create(ctx context.Context, req OrganizationRequest) (string, error) {
	var message string

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.NotFound("User does not exist.")
			}
			return domain.Database("An error occurred while creating the organization.", err)
		}

		org := orgFromRequest(req)
		if err := s.orgs.Create(ctx, org); err != nil {
			s.logger.Error("failed to create organization",
				slog.String("name", req.Name),
				slog.String("error", err.Error()),
			)
			return domain.Database("An error occurred while creating the organization.", err)
		}

		message = fmt.Sprintf("%s was added!", org.Name)
		return nil
	})
	if err != nil {
		return "", err
	}

	return message, nil
}

// Update verifies both the referenced user and the organization exist,
// then applies the update. No write happens when either check fails.
func (s *OrganizationService) Update(ctx context.Context, req OrganizationRequest) (string, error) {
	var message string

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.NotFound("User does not exist.")
			}
			return domain.Database("An error occurred while updating the organization.", err)
		}

		if _, err := s.orgs.GetByID(ctx, req.ID); err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.NotFound("Organization does not exist.")
			}
			return domain.Database("An error occurred while updating the organization.", err)
		}

		org := orgFromRequest(req)
		if err := s.orgs.Update(ctx, org); err != nil {
			s.logger.Error("failed to update organization",
				slog.Int64("organization_id", req.ID),
				slog.String("error", err.Error()),
			)
			return domain.Database("An error occurred while updating the organization.", err)
		}

		message = fmt.Sprintf("%s was updated!", org.Name)
		return nil
	})
	if err != nil {
		return "", err
	}

	return message, nil
}

// List is part of the declared contract but not implemented yet.
func (s *OrganizationService) List(ctx context.Context) error {
	return domain.Internal("List organizations functionality not yet implemented")
}

// Get is part of the declared contract but not implemented yet.
func (s *OrganizationService) Get(ctx context.Context, id int64) error {
	return domain.Internal("Get organization by ID functionality not yet implemented")
}

// Delete is part of the declared contract but not implemented yet.
func (s *OrganizationService) Delete(ctx context.Context, id int64) error {
	return domain.Internal("Delete organization functionality not yet implemented")
}

func orgFromRequest(req OrganizationRequest) *domain.Organization {
	return &domain.Organization{
		ID:           req.ID,
		Name:         req.Name,
		Address:      req.Address,
		CityID:       req.CityID,
		DurationFrom: req.DurationFrom,
		DurationTo:   req.DurationTo,
		IsCurrent:    req.IsCurrent,
		UserID:       req.UserID,
		PositionID:   req.PositionID,
		TeamID:       req.TeamID,
	}
}

func organizationData(orgs []*domain.Organization) []OrganizationData {
	if len(orgs) == 0 {
		return nil
	}
	out := make([]OrganizationData, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, OrganizationData{
			ID:           o.ID,
			Name:         o.Name,
			Address:      o.Address,
			CityID:       o.CityID,
			DurationFrom: o.DurationFrom,
			DurationTo:   o.DurationTo,
			IsCurrent:    o.IsCurrent,
		})
	}
	return out
}
