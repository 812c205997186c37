package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/security/audit"
)

type noTx struct{}

func (noTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memActivityRepo struct {
	mu       sync.Mutex
	created  []*domain.UserActivity
	failures int
}

func (m *memActivityRepo) Create(_ context.Context, a *domain.UserActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("transient failure")
	}
	m.created = append(m.created, a)
	return nil
}

func (m *memActivityRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestActivityWorkerPersistsEntries(t *testing.T) {
	recorder := audit.NewRecorder(8, nil)
	repo := &memActivityRepo{}
	w := NewActivityWorker(recorder, repo, noTx{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	userID := int64(3)
	recorder.Record(audit.Entry{UserID: &userID, Activity: map[string]any{"request_path": "/x"}, At: time.Now()})
	recorder.Record(audit.Entry{Activity: map[string]any{"request_path": "/y"}, At: time.Now()})

	waitFor(t, func() bool { return repo.count() == 2 })
}

func TestActivityWorkerRetriesTransientFailure(t *testing.T) {
	recorder := audit.NewRecorder(8, nil)
	repo := &memActivityRepo{failures: 2}
	w := NewActivityWorker(recorder, repo, noTx{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	recorder.Record(audit.Entry{Activity: map[string]any{"request_path": "/x"}, At: time.Now()})

	waitFor(t, func() bool { return repo.count() == 1 })
}

func TestActivityWorkerFlushesOnShutdown(t *testing.T) {
	recorder := audit.NewRecorder(8, nil)
	repo := &memActivityRepo{}
	w := NewActivityWorker(recorder, repo, noTx{}, nil)

	recorder.Record(audit.Entry{Activity: map[string]any{"request_path": "/x"}, At: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	<-done
	if repo.count() != 1 {
		t.Fatalf("expected queued entry flushed on shutdown, got %d", repo.count())
	}
}
