package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Generate(42)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	userID, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("user id = %d, want 42", userID)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.Generate(7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := tm.Validate(token); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("different", time.Hour)

	token, err := tm.Generate(7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.Validate(token); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	if _, err := tm.Validate("not-a-token"); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestRemainingValidity(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.Generate(1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	remaining := tm.RemainingValidity(token)
	if remaining <= 0 || remaining > time.Hour {
		t.Fatalf("remaining = %v, want (0, 1h]", remaining)
	}

	if got := tm.RemainingValidity("garbage"); got != time.Hour {
		t.Fatalf("garbage token remaining = %v, want configured expiry", got)
	}
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("extract = %q, %v", token, err)
	}

	for _, header := range []string{"", "abc", "Basic abc", "Bearer a b"} {
		if _, err := ExtractToken(header); err == nil {
			t.Fatalf("expected error for header %q", header)
		}
	}
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()

	revoked, err := store.IsRevoked(nil, "tok")
	if err != nil || revoked {
		t.Fatalf("fresh token reported revoked")
	}

	if err := store.Revoke(nil, "tok", time.Minute); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	revoked, err = store.IsRevoked(nil, "tok")
	if err != nil || !revoked {
		t.Fatalf("expected token revoked")
	}
}
