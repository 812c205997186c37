package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
)

// CreateEmployeeRequest carries the validated fields for employee
// creation.
type CreateEmployeeRequest struct {
	EmployeeCode string
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	Email        string
	City         *string
	Country      *string
	Status       domain.EmployeeStatus
}

// EmployeeData is the employee projection returned by reads.
type EmployeeData struct {
	ID           uuid.UUID             `json:"id"`
	EmployeeCode string                `json:"employee_code"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	DateOfBirth  time.Time             `json:"date_of_birth"`
	Email        string                `json:"email"`
	City         *string               `json:"city"`
	Country      *string               `json:"country"`
	Status       domain.EmployeeStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// EmployeeService handles employee business logic.
type EmployeeService struct {
	employees domain.EmployeeRepository
	tx        domain.TxRunner
	logger    *slog.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employees domain.EmployeeRepository, tx domain.TxRunner, logger *slog.Logger) *EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeService{employees: employees, tx: tx, logger: logger}
}

// Create persists a new employee. Employee code and email are globally
// unique; the store enforces both.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeData, error) {
	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}

	emp := &domain.Employee{
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		Email:        req.Email,
		City:         req.City,
		Country:      req.Country,
		Status:       status,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.employees.Create(ctx, emp); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Conflict("An employee with that code or email already exists.", nil)
			}
			s.logger.Error("failed to create employee",
				slog.String("employee_code", req.EmployeeCode),
				slog.String("error", err.Error()),
			)
			return domain.Database("An error occurred while creating the employee.", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return employeeData(emp), nil
}

// Get fetches one employee.
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*EmployeeData, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoRows) {
			return nil, domain.NotFound("Employee not found.")
		}
		return nil, domain.Database("An error occurred while fetching the employee.", err)
	}
	return employeeData(emp), nil
}

// List returns all employees ordered by employee code.
func (s *EmployeeService) List(ctx context.Context) ([]*EmployeeData, error) {
	emps, err := s.employees.List(ctx)
	if err != nil {
		return nil, domain.Database("An error occurred while listing employees.", err)
	}
	out := make([]*EmployeeData, 0, len(emps))
	for _, e := range emps {
		out = append(out, employeeData(e))
	}
	return out, nil
}

func employeeData(e *domain.Employee) *EmployeeData {
	return &EmployeeData{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		DateOfBirth:  e.DateOfBirth,
		Email:        e.Email,
		City:         e.City,
		Country:      e.Country,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
