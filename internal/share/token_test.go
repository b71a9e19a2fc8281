package share

import (
	"testing"
	"time"
)

func TestListToken(t *testing.T) {
	const secret = "test-secret"

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := NewListToken(secret, "user-42", time.Hour)
		if err != nil {
			t.Fatalf("Failed to create token: %v", err)
		}

		userID, err := ParseListToken(secret, token)
		if err != nil {
			t.Fatalf("Failed to parse token: %v", err)
		}
		if userID != "user-42" {
			t.Errorf("Expected user 'user-42', got %q", userID)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := NewListToken(secret, "user-42", time.Hour)
		if err != nil {
			t.Fatalf("Failed to create token: %v", err)
		}

		if _, err := ParseListToken("other-secret", token); err == nil {
			t.Fatal("Expected an error for the wrong secret, got nil")
		}
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := NewListToken(secret, "user-42", -time.Minute)
		if err != nil {
			t.Fatalf("Failed to create token: %v", err)
		}

		if _, err := ParseListToken(secret, token); err == nil {
			t.Fatal("Expected an error for an expired token, got nil")
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := ParseListToken(secret, "not-a-token"); err == nil {
			t.Fatal("Expected an error for a malformed token, got nil")
		}
	})
}
