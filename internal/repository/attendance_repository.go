package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/pkg/database"
)

// PostgresAttendanceRepository implements domain.AttendanceRepository
// over attendance_record_t. The table carries a partial unique index on
// (employee_id) WHERE clock_out IS NULL, so the open-shift invariant
// holds even when two clock-ins race past the application-level check.
type PostgresAttendanceRepository struct {
	pool   *database.ConnectionPool
	logger *slog.Logger
}

// NewPostgresAttendanceRepository creates a new attendance repository.
func NewPostgresAttendanceRepository(pool *database.ConnectionPool, logger *slog.Logger) *PostgresAttendanceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAttendanceRepository{pool: pool, logger: logger}
}

// GetOpenByEmployee returns the most recently opened record with a null
// clock-out. If integrity was ever violated and several open records
// exist, the one with the latest clock_in wins.
func (r *PostgresAttendanceRepository) GetOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceRecord, error) {
	query := `
		SELECT id, employee_id, clock_in, clock_out, created_at, updated_at
		FROM attendance_record_t
		WHERE employee_id = $1 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	rec := &domain.AttendanceRecord{}
	err := r.pool.Querier(ctx).QueryRowContext(ctx, query, employeeID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.ClockIn, &rec.ClockOut,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	return rec, nil
}

// Create inserts a new attendance record. A violation of the open-shift
// index surfaces as domain.ErrOpenShiftExists.
func (r *PostgresAttendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_record_t (employee_id, clock_in, clock_out)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.Querier(ctx).QueryRowContext(ctx, query,
		rec.EmployeeID, rec.ClockIn, rec.ClockOut,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, openShiftConstraint) {
			return fmt.Errorf("employee %s: %w", rec.EmployeeID, domain.ErrOpenShiftExists)
		}
		r.logger.Error("failed to create attendance record",
			slog.String("employee_id", rec.EmployeeID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create attendance record: %w", err)
	}

	return nil
}

// Close sets clock_out on rec and refreshes updated_at.
func (r *PostgresAttendanceRepository) Close(ctx context.Context, rec *domain.AttendanceRecord, clockOut time.Time) error {
	query := `
		UPDATE attendance_record_t
		SET clock_out = $1, updated_at = now()
		WHERE id = $2 AND clock_out IS NULL
		RETURNING updated_at
	`

	err := r.pool.Querier(ctx).QueryRowContext(ctx, query, clockOut, rec.ID).Scan(&rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNoRows
		}
		return fmt.Errorf("failed to close attendance record: %w", err)
	}

	rec.ClockOut = &clockOut
	return nil
}
