package security

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestDeriveTokenKey(t *testing.T) {
	t.Parallel()

	first, err := DeriveTokenKey("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("DeriveTokenKey() returned error: %v", err)
	}
	second, _ := DeriveTokenKey("0123456789abcdef0123456789abcdef")
	other, _ := DeriveTokenKey("fedcba9876543210fedcba9876543210")

	if len(first) != 32 {
		t.Fatalf("DeriveTokenKey() len = %d, want 32", len(first))
	}
	if !bytes.Equal(first, second) {
		t.Fatal("DeriveTokenKey() is not deterministic")
	}
	if bytes.Equal(first, other) {
		t.Fatal("different secrets derived the same key")
	}
	if _, err := DeriveTokenKey("  "); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestDeviceTokenRoundTrip(t *testing.T) {
	t.Parallel()

	key, _ := DeriveTokenKey("0123456789abcdef0123456789abcdef")
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	token, err := IssueDeviceToken(key, "device-1", now, time.Hour)
	if err != nil {
		t.Fatalf("IssueDeviceToken() returned error: %v", err)
	}

	userID, err := ParseDeviceToken(key, token, now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("ParseDeviceToken() returned error: %v", err)
	}
	if userID != "device-1" {
		t.Fatalf("ParseDeviceToken() = %q, want device-1", userID)
	}
}

func TestParseDeviceTokenRejects(t *testing.T) {
	t.Parallel()

	key, _ := DeriveTokenKey("0123456789abcdef0123456789abcdef")
	otherKey, _ := DeriveTokenKey("fedcba9876543210fedcba9876543210")
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	token, _ := IssueDeviceToken(key, "device-1", now, time.Hour)

	tests := []struct {
		name  string
		key   []byte
		token string
		at    time.Time
	}{
		{name: "expired", key: key, token: token, at: now.Add(2 * time.Hour)},
		{name: "wrong key", key: otherKey, token: token, at: now},
		{name: "garbage", key: key, token: "not-a-token", at: now},
		{name: "empty", key: key, token: "", at: now},
	}

	for _, test := range tests {
		if _, err := ParseDeviceToken(test.key, test.token, test.at); !errors.Is(err, ErrInvalidDeviceToken) {
			t.Fatalf("%s: expected ErrInvalidDeviceToken, got %v", test.name, err)
		}
	}
}
