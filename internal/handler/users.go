package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/service"
)

const maxUploadBytes = 10 << 20

// UserHandler serves user registration and reads.
type UserHandler struct {
	users  *service.UserService
	files  *service.FileService
	logger *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService, files *service.FileService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, files: files, logger: logger}
}

// Create registers a user from multipart form data. An optional
// user_file part becomes the profile picture; upload failure does not
// fail the registration.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid request payload."))
		return
	}

	req, err := parseCreateUserForm(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var profilePicLocation *string
	if file, header, ferr := r.FormFile("user_file"); ferr == nil {
		defer file.Close()
		contentType := header.Header.Get("Content-Type")
		profilePicLocation = h.files.UploadProfilePic(r.Context(), header.Filename, contentType, file)
	}

	message, err := h.users.Create(r.Context(), *req, profilePicLocation)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, message, nil)
}

// List returns every user with nested organizations under data.users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteEnvelope(w, http.StatusOK, Envelope{
		Status: "success",
		Data:   map[string]any{"users": users},
	})
}

// Get returns one user with nested organizations.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid user id."))
		return
	}

	data, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteEnvelope(w, http.StatusOK, Envelope{Status: "success", Data: data})
}

// Update is a contract stub.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid user id."))
		return
	}
	WriteError(w, h.logger, h.users.Update(r.Context(), id))
}

// Delete is a contract stub.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid user id."))
		return
	}
	WriteError(w, h.logger, h.users.Delete(r.Context(), id))
}

func parseCreateUserForm(r *http.Request) (*service.CreateUserRequest, error) {
	req := service.CreateUserRequest{
		FirstName:    strings.TrimSpace(r.FormValue("first_name")),
		LastName:     strings.TrimSpace(r.FormValue("last_name")),
		MobileNumber: strings.TrimSpace(r.FormValue("mobile_number")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Introduction: r.FormValue("introduction"),
		Address:      r.FormValue("address"),
		Gender:       r.FormValue("gender"),
		Username:     strings.TrimSpace(r.FormValue("user_name")),
		Password:     r.FormValue("password"),
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Username == "" || req.Password == "" {
		return nil, domain.Validation("Missing required user fields.")
	}

	if v := r.FormValue("middle_name"); v != "" {
		req.MiddleName = &v
	}

	dob, err := parseDate(r.FormValue("dob_dtm"))
	if err != nil {
		return nil, domain.Validation("Invalid date of birth.")
	}
	req.DOB = dob

	if v := r.FormValue("city_id"); v != "" {
		cityID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || cityID <= 0 {
			return nil, domain.Validation("Invalid city id.")
		}
		req.CityID = &cityID
	}

	if v := r.FormValue("pincode"); v != "" {
		pincode, err := strconv.Atoi(v)
		if err != nil || pincode <= 0 {
			return nil, domain.Validation("Invalid pincode.")
		}
		req.Pincode = pincode
	}

	return &req, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
