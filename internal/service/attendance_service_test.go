package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
)

func newAttendanceFixture() (*AttendanceService, *memEmployeeRepo, *memAttendanceRepo) {
	employees := newMemEmployeeRepo()
	attendance := newMemAttendanceRepo()
	svc := NewAttendanceService(employees, attendance, noTx{}, nil, nil)
	return svc, employees, attendance
}

func TestClockInUnknownEmployee(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	_, err := svc.ClockIn(context.Background(), uuid.New())
	appErr, ok := domain.AsError(err)
	if !ok || appErr.Code != domain.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr.Message != "Employee not found." {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestClockInRejectsSecondOpenShift(t *testing.T) {
	svc, employees, attendance := newAttendanceFixture()
	emp := employees.add(&domain.Employee{EmployeeCode: "E1", Email: "e1@x.com"})

	first, err := svc.ClockIn(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("first clock-in failed: %v", err)
	}
	if first.ClockOut != nil {
		t.Fatalf("expected open record")
	}

	_, err = svc.ClockIn(context.Background(), emp.ID)
	appErr, ok := domain.AsError(err)
	if !ok || appErr.Code != domain.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := appErr.Payload["attendance_id"]; got != first.ID.String() {
		t.Fatalf("conflict payload attendance_id = %v, want %s", got, first.ID)
	}
	if n := attendance.openCount(emp.ID); n != 1 {
		t.Fatalf("open record count = %d, want 1", n)
	}
}

func TestClockInAfterClockOut(t *testing.T) {
	svc, employees, _ := newAttendanceFixture()
	emp := employees.add(&domain.Employee{EmployeeCode: "E2", Email: "e2@x.com"})

	first, err := svc.ClockIn(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("clock-in failed: %v", err)
	}

	closed, err := svc.ClockOut(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("clock-out failed: %v", err)
	}
	if closed.ID != first.ID || closed.ClockOut == nil {
		t.Fatalf("expected the open record closed, got %+v", closed)
	}

	second, err := svc.ClockIn(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("second clock-in after clock-out failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected a new record")
	}
}

func TestClockOutWithoutOpenShift(t *testing.T) {
	svc, employees, _ := newAttendanceFixture()
	emp := employees.add(&domain.Employee{EmployeeCode: "E3", Email: "e3@x.com"})

	_, err := svc.ClockOut(context.Background(), emp.ID)
	appErr, ok := domain.AsError(err)
	if !ok || appErr.Code != domain.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if appErr.Message != "Employee is not clocked in." {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestClockInUsesInjectedClock(t *testing.T) {
	employees := newMemEmployeeRepo()
	attendance := newMemAttendanceRepo()
	fixed := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAttendanceService(employees, attendance, noTx{}, func() time.Time { return fixed }, nil)

	emp := employees.add(&domain.Employee{EmployeeCode: "E4", Email: "e4@x.com"})
	rec, err := svc.ClockIn(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("clock-in failed: %v", err)
	}
	if !rec.ClockIn.Equal(fixed) {
		t.Fatalf("clock_in = %v, want %v", rec.ClockIn, fixed)
	}
}
