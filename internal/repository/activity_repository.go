package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/pkg/database"
)

// PostgresActivityRepository implements domain.ActivityRepository over
// user_activity_t. Records are append-only.
type PostgresActivityRepository struct {
	pool   *database.ConnectionPool
	logger *slog.Logger
}

// NewPostgresActivityRepository creates a new activity repository.
func NewPostgresActivityRepository(pool *database.ConnectionPool, logger *slog.Logger) *PostgresActivityRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresActivityRepository{pool: pool, logger: logger}
}

// Create appends one activity record.
func (r *PostgresActivityRepository) Create(ctx context.Context, a *domain.UserActivity) error {
	payload, err := json.Marshal(a.Activity)
	if err != nil {
		return fmt.Errorf("failed to marshal activity payload: %w", err)
	}

	query := `
		INSERT INTO user_activity_t (user_id, activity_object)
		VALUES ($1, $2)
		RETURNING id, user_activity_on
	`

	err = r.pool.Querier(ctx).QueryRowContext(ctx, query, a.UserID, payload).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create user activity", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user activity: %w", err)
	}

	return nil
}
