package audit

import (
	"log/slog"
	"time"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/observability/metrics"
)

// Entry is one request audit record waiting to be persisted.
type Entry struct {
	UserID   *int64
	Activity map[string]any
	At       time.Time
}

// Recorder buffers audit entries for the background activity worker.
// Recording never blocks the request path: when the buffer is full the
// entry is dropped and counted against the request, not failed.
type Recorder struct {
	queue  chan Entry
	logger *slog.Logger
}

// NewRecorder creates a recorder with a bounded buffer.
func NewRecorder(queueSize int, logger *slog.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		queue:  make(chan Entry, queueSize),
		logger: logger,
	}
}

// Record enqueues an entry, dropping it if the buffer is full.
func (r *Recorder) Record(e Entry) {
	select {
	case r.queue <- e:
	default:
		metrics.ObserveAuditDrop()
		r.logger.Warn("audit queue full, dropping entry",
			slog.Any("user_id", e.UserID),
		)
	}
}

// Queue exposes the buffered entries to the worker that drains them.
func (r *Recorder) Queue() <-chan Entry {
	return r.queue
}

// ToActivity converts an entry into the persisted activity shape.
func (e Entry) ToActivity() *domain.UserActivity {
	return &domain.UserActivity{
		UserID:    e.UserID,
		Activity:  e.Activity,
		CreatedAt: e.At,
	}
}
