package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localite_user_service_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "localite_user_service_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localite_user_service_login_attempts_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	clockEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localite_user_service_clock_events_total",
		Help: "Count of clock-in and clock-out attempts by result",
	}, []string{"event", "result"})

	auditEntriesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "localite_user_service_audit_entries_dropped_total",
		Help: "Count of audit entries dropped because the queue was full",
	})

	tokenRevocations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "localite_user_service_token_revocations_total",
		Help: "Count of tokens revoked via logout",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLogin increments the login counter for the given result.
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// ObserveClockEvent increments the clock event counter.
func ObserveClockEvent(event, result string) {
	clockEvents.WithLabelValues(event, result).Inc()
}

// ObserveAuditDrop increments the dropped audit entry counter.
func ObserveAuditDrop() {
	auditEntriesDropped.Inc()
}

// ObserveTokenRevocation increments the revoked token counter.
func ObserveTokenRevocation() {
	tokenRevocations.Inc()
}
