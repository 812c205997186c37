package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/pkg/database"
)

const employeeColumns = `id, employee_code, first_name, last_name, date_of_birth,
		email, city, country, status, created_at, updated_at`

// PostgresEmployeeRepository implements domain.EmployeeRepository over
// employee_t.
type PostgresEmployeeRepository struct {
	pool   *database.ConnectionPool
	logger *slog.Logger
}

// NewPostgresEmployeeRepository creates a new employee repository.
func NewPostgresEmployeeRepository(pool *database.ConnectionPool, logger *slog.Logger) *PostgresEmployeeRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEmployeeRepository{pool: pool, logger: logger}
}

// GetByID retrieves an employee by id.
func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee_t WHERE id = $1`

	e := &domain.Employee{}
	err := r.pool.Querier(ctx).QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.DateOfBirth,
		&e.Email, &e.City, &e.Country, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// List retrieves every employee ordered by code.
func (r *PostgresEmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employee_t ORDER BY employee_code`

	rows, err := r.pool.Querier(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e := &domain.Employee{}
		err := rows.Scan(
			&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.DateOfBirth,
			&e.Email, &e.City, &e.Country, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// Create inserts a new employee. Duplicate employee_code or email
// surfaces as domain.ErrDuplicate.
func (r *PostgresEmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `
		INSERT INTO employee_t (employee_code, first_name, last_name, date_of_birth,
			email, city, country, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.Querier(ctx).QueryRowContext(ctx, query,
		e.EmployeeCode, e.FirstName, e.LastName, e.DateOfBirth,
		e.Email, e.City, e.Country, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("employee already exists: %w", domain.ErrDuplicate)
		}
		r.logger.Error("failed to create employee",
			slog.String("employee_code", e.EmployeeCode),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}
