package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/service"
)

// OrganizationHandler serves organization create and update.
type OrganizationHandler struct {
	orgs   *service.OrganizationService
	logger *slog.Logger
}

// NewOrganizationHandler creates a new organization handler.
func NewOrganizationHandler(orgs *service.OrganizationService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, logger: logger}
}

type organizationRequest struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	CityID       *int64  `json:"city_id"`
	DurationFrom *string `json:"duration_from"`
	DurationTo   *string `json:"duration_to"`
	IsCurrent    bool    `json:"is_current_organization"`
	UserID       int64   `json:"user_id"`
	PositionID   *int64  `json:"position_id"`
	TeamID       *int64  `json:"team_id"`
}

// Create adds an organization for a user.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	message, err := h.orgs.Create(r.Context(), *req)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, message, nil)
}

// Update replaces an organization. The path id must match the body id.
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	pathID, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid organization id."))
		return
	}

	req, err := h.decode(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.ID != pathID {
		WriteError(w, h.logger, domain.Validation("Organization ID in URL does not match request body"))
		return
	}

	message, err := h.orgs.Update(r.Context(), *req)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, message, nil)
}

// List is a contract stub.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteError(w, h.logger, h.orgs.List(r.Context()))
}

// Get is a contract stub.
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid organization id."))
		return
	}
	WriteError(w, h.logger, h.orgs.Get(r.Context(), id))
}

// Delete is a contract stub.
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid organization id."))
		return
	}
	WriteError(w, h.logger, h.orgs.Delete(r.Context(), id))
}

func (h *OrganizationHandler) decode(r *http.Request) (*service.OrganizationRequest, error) {
	var body organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, domain.Validation("Invalid request payload.")
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || body.UserID <= 0 {
		return nil, domain.Validation("Missing required organization fields.")
	}

	req := service.OrganizationRequest{
		ID:         body.ID,
		Name:       body.Name,
		Address:    body.Address,
		CityID:     body.CityID,
		IsCurrent:  body.IsCurrent,
		UserID:     body.UserID,
		PositionID: body.PositionID,
		TeamID:     body.TeamID,
	}

	// duration_to earlier than duration_from is accepted unchecked.
	var err error
	if req.DurationFrom, err = parseOptionalDate(body.DurationFrom); err != nil {
		return nil, domain.Validation("Invalid duration_from date.")
	}
	if req.DurationTo, err = parseOptionalDate(body.DurationTo); err != nil {
		return nil, domain.Validation("Invalid duration_to date.")
	}

	return &req, nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := parseDate(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
