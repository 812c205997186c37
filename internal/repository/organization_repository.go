package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/pkg/database"
)

const orgColumns = `id, name, address, city_id, duration_from, duration_to,
		is_current_organization, user_id, position_id, team_id`

// PostgresOrganizationRepository implements domain.OrganizationRepository
// over organizations_t.
type PostgresOrganizationRepository struct {
	pool   *database.ConnectionPool
	logger *slog.Logger
}

// NewPostgresOrganizationRepository creates a new organization repository.
func NewPostgresOrganizationRepository(pool *database.ConnectionPool, logger *slog.Logger) *PostgresOrganizationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresOrganizationRepository{pool: pool, logger: logger}
}

func scanOrganization(row *sql.Row) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := row.Scan(
		&o.ID, &o.Name, &o.Address, &o.CityID, &o.DurationFrom,
		&o.DurationTo, &o.IsCurrent, &o.UserID, &o.PositionID, &o.TeamID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan organization: %w", err)
	}
	return o, nil
}

// GetByID retrieves an organization by id.
func (r *PostgresOrganizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations_t WHERE id = $1`
	return scanOrganization(r.pool.Querier(ctx).QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves all organizations belonging to a user.
func (r *PostgresOrganizationRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations_t WHERE user_id = $1 ORDER BY id`

	rows, err := r.pool.Querier(ctx).QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list organizations by user",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*domain.Organization
	for rows.Next() {
		o := &domain.Organization{}
		err := rows.Scan(
			&o.ID, &o.Name, &o.Address, &o.CityID, &o.DurationFrom,
			&o.DurationTo, &o.IsCurrent, &o.UserID, &o.PositionID, &o.TeamID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, o)
	}

	return orgs, rows.Err()
}

// Create inserts a new organization.
func (r *PostgresOrganizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `
		INSERT INTO organizations_t (name, address, city_id, duration_from, duration_to,
			is_current_organization, user_id, position_id, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.pool.Querier(ctx).QueryRowContext(ctx, query,
		o.Name, o.Address, o.CityID, o.DurationFrom, o.DurationTo,
		o.IsCurrent, o.UserID, o.PositionID, o.TeamID,
	).Scan(&o.ID)
	if err != nil {
		r.logger.Error("failed to create organization",
			slog.String("name", o.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// Update applies the current field values of o.
func (r *PostgresOrganizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `
		UPDATE organizations_t
		SET name = $1, address = $2, city_id = $3, duration_from = $4,
			duration_to = $5, is_current_organization = $6, user_id = $7,
			position_id = $8, team_id = $9
		WHERE id = $10
	`

	result, err := r.pool.Querier(ctx).ExecContext(ctx, query,
		o.Name, o.Address, o.CityID, o.DurationFrom, o.DurationTo,
		o.IsCurrent, o.UserID, o.PositionID, o.TeamID, o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRows
	}

	return nil
}
