package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func TestOpensAfterThreshold(t *testing.T) {
	cb := New(2, 1, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cb.Execute(func() (string, error) { return "", errBoom }); err != errBoom {
			t.Fatalf("expected underlying error, got %v", err)
		}
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v, want open", cb.GetState())
	}

	if _, err := cb.Execute(func() (string, error) { return "ok", nil }); err != ErrOpen {
		t.Fatalf("expected ErrOpen while open, got %v", err)
	}
}

func TestRecoversThroughHalfOpen(t *testing.T) {
	cb := New(1, 1, 10*time.Millisecond)

	cb.Execute(func() (string, error) { return "", errBoom })
	if cb.GetState() != StateOpen {
		t.Fatalf("expected open after failure")
	}

	time.Sleep(20 * time.Millisecond)

	result, err := cb.Execute(func() (string, error) { return "ok", nil })
	if err != nil || result != "ok" {
		t.Fatalf("probe failed: %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Fatalf("state = %v, want closed after probe success", cb.GetState())
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(2, 1, time.Minute)

	cb.Execute(func() (string, error) { return "", errBoom })
	cb.Execute(func() (string, error) { return "ok", nil })
	cb.Execute(func() (string, error) { return "", errBoom })

	if cb.GetState() != StateClosed {
		t.Fatalf("state = %v, want closed", cb.GetState())
	}
}
