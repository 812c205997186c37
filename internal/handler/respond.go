package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/localite/user-service/internal/domain"
)

// Envelope is the uniform response wrapper. Error responses always
// carry all three fields, with data explicitly null when there is no
// payload. Success responses omit data when the operation returns
// nothing, and extra top-level fields (the login token) ride alongside
// via Extra.
type Envelope struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Extra   map[string]any `json:"-"`
}

// MarshalJSON flattens Extra into the top level of the envelope.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := map[string]any{"status": e.Status}
	if e.Message != "" {
		out["message"] = e.Message
	}
	if e.Data != nil {
		out["data"] = e.Data
	}
	for k, v := range e.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Status: "success", Message: message, Data: data})
}

// WriteEnvelope writes an arbitrary envelope, for responses that carry
// top-level fields beyond the standard three.
func WriteEnvelope(w http.ResponseWriter, status int, env Envelope) {
	writeJSON(w, status, env)
}

// WriteError translates a failure into the error envelope. Unknown
// error values fall back to a generic internal failure so no cause
// detail leaks to clients.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	appErr, ok := domain.AsError(err)
	if !ok {
		if logger != nil {
			logger.Error("unhandled error", slog.String("error", err.Error()))
		}
		appErr = domain.Internal("An unexpected error occurred. Please try again later.")
	}

	if logger != nil && appErr.HTTPStatus() >= 500 {
		logger.Error("request failed",
			slog.String("code", string(appErr.Code)),
			slog.String("error", appErr.Error()),
		)
	}

	var data any
	if appErr.Payload != nil {
		data = appErr.Payload
	}
	writeJSON(w, appErr.HTTPStatus(), errorEnvelope{
		Status:  "error",
		Message: appErr.Message,
		Data:    data,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
