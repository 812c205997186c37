package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/security/audit"
	"github.com/localite/user-service/internal/security/auth"
)

// UserIDContextKey carries the authenticated user's id.
type UserIDContextKey struct{}

// TokenContextKey carries the raw bearer token, for logout revocation.
type TokenContextKey struct{}

// RequestIDContextKey carries the per-request id.
type RequestIDContextKey struct{}

// userIDHolder lets RequireAuth expose the resolved user to the audit
// wrapper outside it. Audit plants the holder before auth runs, so the
// inner context rewrite cannot hide the id from it.
type userIDHolder struct {
	id *int64
}

type userIDHolderKey struct{}

// ErrorWriter writes a failure in the service's response envelope. The
// router supplies it so this package stays independent of the handler
// layer.
type ErrorWriter func(w http.ResponseWriter, err error)

// UserID returns the authenticated user id from the context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDContextKey{}).(int64)
	return id, ok
}

// Token returns the raw bearer token from the context.
func Token(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(TokenContextKey{}).(string)
	return t, ok
}

// RequestID tags every request with an id, echoed in X-Request-ID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), RequestIDContextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth verifies the bearer token, rejects revoked tokens and
// resolves the user before the handler runs. A missing header is a 403
// with its own message; every other failure is a 401.
func RequireAuth(
	tm *auth.TokenManager,
	store auth.TokenStore,
	users domain.UserRepository,
	writeError ErrorWriter,
	log *slog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, domain.Forbidden("Provide a valid auth token."))
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				writeError(w, domain.Unauthorized("Invalid token. Please log in again."))
				return
			}

			userID, err := tm.Validate(tokenString)
			if err != nil {
				if err == auth.ErrExpired {
					writeError(w, domain.Unauthorized("Signature expired. Please log in again."))
					return
				}
				writeError(w, domain.Unauthorized("Invalid token. Please log in again."))
				return
			}

			revoked, err := store.IsRevoked(r.Context(), tokenString)
			if err != nil {
				log.Error("token revocation check failed", slog.String("error", err.Error()))
				writeError(w, domain.Internal("An unexpected error occurred. Please try again later."))
				return
			}
			if revoked {
				writeError(w, domain.Unauthorized("Token blacklisted. Please log in again."))
				return
			}

			if _, err := users.GetByID(r.Context(), userID); err != nil {
				writeError(w, domain.Unauthorized("Invalid token. Please log in again."))
				return
			}

			if h, ok := r.Context().Value(userIDHolderKey{}).(*userIDHolder); ok {
				h.id = &userID
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey{}, userID)
			ctx = context.WithValue(ctx, TokenContextKey{}, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// auditTimeLayout matches the persisted request_time format.
const auditTimeLayout = "01/02/2006, 15:04:05"

// Audit records one activity entry per completed request. The entry is
// queued after the response is written; audit failure or backpressure
// never affects the response.
func Audit(recorder *audit.Recorder, serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			holder := &userIDHolder{}
			ctx := context.WithValue(r.Context(), userIDHolderKey{}, holder)
			next.ServeHTTP(rec, r.WithContext(ctx))

			userID := holder.id
			if userID == nil {
				if q := r.URL.Query().Get("userId"); q != "" {
					if id, err := strconv.ParseInt(q, 10, 64); err == nil {
						userID = &id
					}
				}
			}

			schema := "http"
			if r.TLS != nil {
				schema = "https"
			}

			recorder.Record(audit.Entry{
				UserID: userID,
				At:     start,
				Activity: map[string]any{
					"service_name":            serviceName,
					"request_remote_address":  r.RemoteAddr,
					"request_time":            start.Format(auditTimeLayout),
					"request_method_type":     r.Method,
					"request_path":            r.URL.Path,
					"request_schema":          schema,
					"response_status":         rec.status,
					"response_content_length": rec.size,
					"request_referrer":        r.Referer(),
					"request_user_agent":      r.UserAgent(),
				},
			})
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}
