package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus enumerates employment states.
type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "ACTIVE"
	StatusInactive   EmployeeStatus = "INACTIVE"
	StatusTerminated EmployeeStatus = "TERMINATED"
	StatusOnLeave    EmployeeStatus = "ON_LEAVE"
)

// Employee is an HR employee record. EmployeeCode and Email are
// globally unique.
type Employee struct {
	ID           uuid.UUID
	EmployeeCode string
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	Email        string
	City         *string
	Country      *string
	Status       EmployeeStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AttendanceRecord is one shift. A record with a nil ClockOut is an
// open shift; the store enforces at most one open shift per employee.
type AttendanceRecord struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	ClockIn    time.Time
	ClockOut   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EmployeeRepository defines data access for employees.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Create(ctx context.Context, e *Employee) error
}

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// GetOpenByEmployee returns the most recently opened record with a
	// null clock-out, ordered by clock_in descending.
	GetOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*AttendanceRecord, error)
	Create(ctx context.Context, rec *AttendanceRecord) error
	// Close sets clock_out on the given record and refreshes updated_at.
	Close(ctx context.Context, rec *AttendanceRecord, clockOut time.Time) error
}
