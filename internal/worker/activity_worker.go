package worker

import (
	"context"
	"log/slog"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/reliability/retry"
	"github.com/localite/user-service/internal/security/audit"
)

// ActivityWorker drains the audit recorder queue and persists each
// entry in its own transaction. A failed write retries with backoff
// and is then dropped; audit persistence never feeds back into
// request handling.
type ActivityWorker struct {
	recorder   *audit.Recorder
	activities domain.ActivityRepository
	tx         domain.TxRunner
	retryCfg   *retry.Config
	logger     *slog.Logger
}

// NewActivityWorker creates a new activity worker.
func NewActivityWorker(
	recorder *audit.Recorder,
	activities domain.ActivityRepository,
	tx domain.TxRunner,
	logger *slog.Logger,
) *ActivityWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityWorker{
		recorder:   recorder,
		activities: activities,
		tx:         tx,
		retryCfg:   retry.DefaultConfig(),
		logger:     logger,
	}
}

// Start runs the drain loop until ctx ends. Entries already queued
// when ctx is cancelled are flushed before returning.
func (w *ActivityWorker) Start(ctx context.Context) {
	w.logger.Info("activity worker started")

	for {
		select {
		case <-ctx.Done():
			w.flush()
			w.logger.Info("activity worker stopped")
			return
		case entry := <-w.recorder.Queue():
			w.persist(entry)
		}
	}
}

// flush drains whatever is still buffered.
func (w *ActivityWorker) flush() {
	for {
		select {
		case entry := <-w.recorder.Queue():
			w.persist(entry)
		default:
			return
		}
	}
}

// persist runs detached from the loop context so shutdown does not
// abort a write already taken off the queue.
func (w *ActivityWorker) persist(entry audit.Entry) {
	ctx := context.Background()
	err := retry.Do(ctx, w.retryCfg, w.logger, "persist_user_activity", func(ctx context.Context) error {
		return w.tx.WithinTx(ctx, func(ctx context.Context) error {
			return w.activities.Create(ctx, entry.ToActivity())
		})
	})
	if err != nil {
		w.logger.Error("dropping audit entry after retries",
			slog.Any("user_id", entry.UserID),
			slog.String("error", err.Error()),
		)
	}
}
