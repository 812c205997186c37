package audit

import (
	"testing"
	"time"
)

func TestRecordAndDrain(t *testing.T) {
	r := NewRecorder(4, nil)

	userID := int64(7)
	r.Record(Entry{UserID: &userID, Activity: map[string]any{"request_path": "/auth/login"}, At: time.Now()})

	select {
	case e := <-r.Queue():
		if e.UserID == nil || *e.UserID != 7 {
			t.Fatalf("unexpected entry user id: %v", e.UserID)
		}
		if e.Activity["request_path"] != "/auth/login" {
			t.Fatalf("unexpected activity: %v", e.Activity)
		}
	default:
		t.Fatalf("expected a queued entry")
	}
}

func TestRecordDropsWhenFull(t *testing.T) {
	r := NewRecorder(2, nil)

	for i := 0; i < 5; i++ {
		r.Record(Entry{At: time.Now()})
	}

	// The queue held its bound; extra entries were dropped, not blocked on.
	if n := len(r.Queue()); n != 2 {
		t.Fatalf("queue length = %d, want 2", n)
	}
}

func TestToActivity(t *testing.T) {
	at := time.Now()
	e := Entry{Activity: map[string]any{"response_status": 200}, At: at}

	a := e.ToActivity()
	if a.UserID != nil {
		t.Fatalf("expected nil user id for anonymous entry")
	}
	if !a.CreatedAt.Equal(at) || a.Activity["response_status"] != 200 {
		t.Fatalf("unexpected activity: %+v", a)
	}
}
