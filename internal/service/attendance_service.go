package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
)

// AttendanceData is the attendance record projection returned by the
// clock endpoints. Timestamps serialize as RFC 3339, ids as strings.
type AttendanceData struct {
	ID         uuid.UUID  `json:"id"`
	EmployeeID uuid.UUID  `json:"employee_id"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AttendanceService drives the per-employee shift state machine. An
// employee is either clocked in (exactly one record with a null
// clock-out) or not; the open-shift unique index in the store backs
// the invariant under concurrent requests.
type AttendanceService struct {
	employees  domain.EmployeeRepository
	attendance domain.AttendanceRepository
	tx         domain.TxRunner
	now        func() time.Time
	logger     *slog.Logger
}

// NewAttendanceService creates a new attendance service. now may be
// nil, in which case UTC wall-clock time is used.
func NewAttendanceService(
	employees domain.EmployeeRepository,
	attendance domain.AttendanceRepository,
	tx domain.TxRunner,
	now func() time.Time,
	logger *slog.Logger,
) *AttendanceService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceService{
		employees:  employees,
		attendance: attendance,
		tx:         tx,
		now:        now,
		logger:     logger,
	}
}

// ClockIn opens a shift for the employee. A second clock-in while a
// shift is open is rejected with a conflict carrying the open record's
// id. Two racing clock-ins both pass the precondition read; the
// partial unique index rejects the loser at insert time and the
// conflict is reported the same way.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID uuid.UUID) (*AttendanceData, error) {
	var data *AttendanceData

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.NotFound("Employee not found.")
			}
			return domain.Database("An error occurred while clocking in.", err)
		}

		open, err := s.attendance.GetOpenByEmployee(ctx, employeeID)
		if err != nil && !errors.Is(err, domain.ErrNoRows) {
			return domain.Database("An error occurred while clocking in.", err)
		}
		if open != nil {
			return clockInConflict(open)
		}

		rec := &domain.AttendanceRecord{
			EmployeeID: employeeID,
			ClockIn:    s.now(),
		}
		if err := s.attendance.Create(ctx, rec); err != nil {
			if errors.Is(err, domain.ErrOpenShiftExists) {
				return nil
			}
			s.logger.Error("failed to create attendance record",
				slog.String("employee_id", employeeID.String()),
				slog.String("error", err.Error()),
			)
			return domain.Database("An error occurred while clocking in.", err)
		}

		data = attendanceData(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if data == nil {
		// Lost the insert race inside the transaction. Re-read the
		// winner outside it so the conflict payload carries its id.
		open, err := s.attendance.GetOpenByEmployee(ctx, employeeID)
		if err != nil {
			return nil, domain.Database("An error occurred while clocking in.", err)
		}
		return nil, clockInConflict(open)
	}

	s.logger.Info("employee clocked in",
		slog.String("employee_id", employeeID.String()),
		slog.String("attendance_id", data.ID.String()),
	)
	return data, nil
}

// ClockOut closes the employee's open shift.
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID uuid.UUID) (*AttendanceData, error) {
	var data *AttendanceData

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.NotFound("Employee not found.")
			}
			return domain.Database("An error occurred while clocking out.", err)
		}

		open, err := s.attendance.GetOpenByEmployee(ctx, employeeID)
		if err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.Conflict("Employee is not clocked in.", nil)
			}
			return domain.Database("An error occurred while clocking out.", err)
		}

		if err := s.attendance.Close(ctx, open, s.now()); err != nil {
			if errors.Is(err, domain.ErrNoRows) {
				return domain.Conflict("Employee is not clocked in.", nil)
			}
			s.logger.Error("failed to close attendance record",
				slog.String("attendance_id", open.ID.String()),
				slog.String("error", err.Error()),
			)
			return domain.Database("An error occurred while clocking out.", err)
		}

		data = attendanceData(open)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee clocked out",
		slog.String("employee_id", employeeID.String()),
		slog.String("attendance_id", data.ID.String()),
	)
	return data, nil
}

func clockInConflict(open *domain.AttendanceRecord) error {
	return domain.Conflict(
		"Employee is already clocked in. Please clock out first.",
		map[string]any{"attendance_id": open.ID.String()},
	)
}

func attendanceData(rec *domain.AttendanceRecord) *AttendanceData {
	return &AttendanceData{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		ClockIn:    rec.ClockIn,
		ClockOut:   rec.ClockOut,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
