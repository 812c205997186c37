package handler

import (
	"log/slog"
	"net/http"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/service"
)

// GeographyHandler serves the country/state/city reference data.
type GeographyHandler struct {
	geo    *service.GeographyService
	logger *slog.Logger
}

// NewGeographyHandler creates a new geography handler.
func NewGeographyHandler(geo *service.GeographyService, logger *slog.Logger) *GeographyHandler {
	return &GeographyHandler{geo: geo, logger: logger}
}

// Countries lists all countries.
func (h *GeographyHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.geo.Countries(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteEnvelope(w, http.StatusOK, Envelope{
		Status: "success",
		Data:   map[string]any{"countries": countries},
	})
}

// States lists the states of a country.
func (h *GeographyHandler) States(w http.ResponseWriter, r *http.Request) {
	countryID, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid country id."))
		return
	}

	states, err := h.geo.States(r.Context(), countryID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteEnvelope(w, http.StatusOK, Envelope{
		Status: "success",
		Data:   map[string]any{"states": states},
	})
}

// Cities lists the cities of a state.
func (h *GeographyHandler) Cities(w http.ResponseWriter, r *http.Request) {
	stateID, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid state id."))
		return
	}

	cities, err := h.geo.Cities(r.Context(), stateID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteEnvelope(w, http.StatusOK, Envelope{
		Status: "success",
		Data:   map[string]any{"cities": cities},
	})
}
