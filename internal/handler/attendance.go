package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/observability/metrics"
	"github.com/localite/user-service/internal/service"
)

// EmployeeHandler serves employee records and the clock endpoints.
type EmployeeHandler struct {
	employees  *service.EmployeeService
	attendance *service.AttendanceService
	logger     *slog.Logger
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(
	employees *service.EmployeeService,
	attendance *service.AttendanceService,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, attendance: attendance, logger: logger}
}

type createEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	DateOfBirth  string  `json:"date_of_birth"`
	Email        string  `json:"email"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	Status       string  `json:"status"`
}

// Create adds an employee.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid request payload."))
		return
	}

	body.EmployeeCode = strings.TrimSpace(body.EmployeeCode)
	body.Email = strings.TrimSpace(body.Email)
	if body.EmployeeCode == "" || body.FirstName == "" || body.LastName == "" || body.Email == "" {
		WriteError(w, h.logger, domain.Validation("Missing required employee fields."))
		return
	}

	var dob time.Time
	if body.DateOfBirth != "" {
		var err error
		if dob, err = parseDate(body.DateOfBirth); err != nil {
			WriteError(w, h.logger, domain.Validation("Invalid date of birth."))
			return
		}
	}

	status := domain.EmployeeStatus(strings.ToUpper(body.Status))
	switch status {
	case "", domain.StatusActive, domain.StatusInactive, domain.StatusTerminated, domain.StatusOnLeave:
	default:
		WriteError(w, h.logger, domain.Validation("Invalid employee status."))
		return
	}

	data, err := h.employees.Create(r.Context(), service.CreateEmployeeRequest{
		EmployeeCode: body.EmployeeCode,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		DateOfBirth:  dob,
		Email:        body.Email,
		City:         body.City,
		Country:      body.Country,
		Status:       status,
	})
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteEnvelope(w, http.StatusCreated, Envelope{Status: "success", Data: data})
}

// Get returns one employee.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid employee id."))
		return
	}

	data, err := h.employees.Get(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteEnvelope(w, http.StatusOK, Envelope{Status: "success", Data: data})
}

// List returns all employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	data, err := h.employees.List(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteEnvelope(w, http.StatusOK, Envelope{
		Status: "success",
		Data:   map[string]any{"employees": data},
	})
}

// ClockIn opens a shift for the employee.
func (h *EmployeeHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid employee id."))
		return
	}

	data, err := h.attendance.ClockIn(r.Context(), id)
	if err != nil {
		metrics.ObserveClockEvent("clock_in", "failure")
		WriteError(w, h.logger, err)
		return
	}

	metrics.ObserveClockEvent("clock_in", "success")
	WriteSuccess(w, http.StatusCreated, "Successfully clocked in.", data)
}

// ClockOut closes the employee's open shift.
func (h *EmployeeHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid employee id."))
		return
	}

	data, err := h.attendance.ClockOut(r.Context(), id)
	if err != nil {
		metrics.ObserveClockEvent("clock_out", "failure")
		WriteError(w, h.logger, err)
		return
	}

	metrics.ObserveClockEvent("clock_out", "success")
	WriteSuccess(w, http.StatusOK, "Successfully clocked out.", data)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
