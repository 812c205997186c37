package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/featureflags"
	"github.com/localite/user-service/internal/observability/metrics"
	"github.com/localite/user-service/internal/security/audit"
	"github.com/localite/user-service/internal/security/auth"
	"github.com/localite/user-service/internal/security/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName is recorded on every audit entry.
const ServiceName = "localite-user-service"

// RouterDeps carries everything the route table needs.
type RouterDeps struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Orgs      *OrganizationHandler
	Employees *EmployeeHandler
	Geo       *GeographyHandler
	Health    *HealthHandler

	TokenManager *auth.TokenManager
	TokenStore   auth.TokenStore
	UserRepo     domain.UserRepository
	Recorder     *audit.Recorder
	Logger       *slog.Logger
}

// route declares one endpoint. Public routes bypass auth even under
// the enforce-auth flag; audit marks routes whose requests are
// recorded as user activity.
type route struct {
	method       string
	pattern      string
	handler      http.HandlerFunc
	public       bool
	requiresAuth bool
	audit        bool
}

// NewRouter assembles the route table. Auth and audit wrap each route
// individually so the declarations stay next to the paths they govern.
func NewRouter(deps RouterDeps) http.Handler {
	writeError := func(w http.ResponseWriter, err error) {
		WriteError(w, deps.Logger, err)
	}
	requireAuth := middleware.RequireAuth(
		deps.TokenManager, deps.TokenStore, deps.UserRepo, writeError, deps.Logger,
	)
	auditWrap := middleware.Audit(deps.Recorder, ServiceName)
	enforceAuth := featureflags.Enabled(featureflags.EnforceAuth)

	routes := []route{
		{method: http.MethodPost, pattern: "/auth/login", handler: deps.Auth.Login, public: true, audit: true},
		{method: http.MethodPost, pattern: "/auth/logout", handler: deps.Auth.Logout, requiresAuth: true, audit: true},
		{method: http.MethodGet, pattern: "/auth/status", handler: deps.Auth.Status, requiresAuth: true, audit: true},

		{method: http.MethodPost, pattern: "/api/users", handler: deps.Users.Create, public: true, audit: true},
		{method: http.MethodGet, pattern: "/api/users", handler: deps.Users.List, public: true, audit: true},
		{method: http.MethodGet, pattern: "/api/users/{id}", handler: deps.Users.Get, requiresAuth: true, audit: true},
		{method: http.MethodPut, pattern: "/api/users/{id}", handler: deps.Users.Update, requiresAuth: true, audit: true},
		{method: http.MethodDelete, pattern: "/api/users/{id}", handler: deps.Users.Delete, requiresAuth: true, audit: true},

		{method: http.MethodPost, pattern: "/api/organizations", handler: deps.Orgs.Create, requiresAuth: true, audit: true},
		{method: http.MethodGet, pattern: "/api/organizations", handler: deps.Orgs.List, requiresAuth: true, audit: true},
		{method: http.MethodGet, pattern: "/api/organizations/{id}", handler: deps.Orgs.Get, requiresAuth: true, audit: true},
		{method: http.MethodPut, pattern: "/api/organizations/{id}", handler: deps.Orgs.Update, requiresAuth: true, audit: true},
		{method: http.MethodDelete, pattern: "/api/organizations/{id}", handler: deps.Orgs.Delete, requiresAuth: true, audit: true},

		{method: http.MethodPost, pattern: "/api/employees", handler: deps.Employees.Create, requiresAuth: true, audit: true},
		{method: http.MethodGet, pattern: "/api/employees", handler: deps.Employees.List, requiresAuth: true, audit: true},
		{method: http.MethodGet, pattern: "/api/employees/{id}", handler: deps.Employees.Get, requiresAuth: true, audit: true},
		{method: http.MethodPost, pattern: "/api/employees/{id}/clock_in", handler: deps.Employees.ClockIn, requiresAuth: true, audit: true},
		{method: http.MethodPost, pattern: "/api/employees/{id}/clock_out", handler: deps.Employees.ClockOut, requiresAuth: true, audit: true},

		{method: http.MethodGet, pattern: "/api/geo/countries", handler: deps.Geo.Countries, public: true},
		{method: http.MethodGet, pattern: "/api/geo/countries/{id}/states", handler: deps.Geo.States, public: true},
		{method: http.MethodGet, pattern: "/api/geo/states/{id}/cities", handler: deps.Geo.Cities, public: true},

		{method: http.MethodGet, pattern: "/healthz", handler: deps.Health.Live, public: true},
		{method: http.MethodGet, pattern: "/readyz", handler: deps.Health.Ready, public: true},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metrics.HTTPMetricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorEnvelope{
			Status:  "error",
			Message: fmt.Sprintf("Route not found: %s", req.URL.Path),
			Data:    nil,
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{
			Status:  "error",
			Message: fmt.Sprintf("Method %s not allowed for %s", req.Method, req.URL.Path),
			Data:    nil,
		})
	})

	for _, rt := range routes {
		var h http.Handler = rt.handler
		if rt.requiresAuth || (enforceAuth && !rt.public) {
			h = requireAuth(h)
		}
		// Audit wraps outside auth so rejected requests are recorded too.
		if rt.audit {
			h = auditWrap(h)
		}
		r.Method(rt.method, rt.pattern, h)
	}

	r.Handle("/metrics", promhttp.Handler())

	return r
}
