package util

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret", time.Minute)

	accountID := uuid.New()
	token, expiresAt, err := manager.Generate(accountID, "user@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.AccountID != accountID {
		t.Fatalf("expected account id %s, got %s", accountID, claims.AccountID)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Minute).Generate(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := NewJWTManager("two", time.Minute).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Second)
	token, _, err := manager.Generate(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	time.Sleep(2100 * time.Millisecond)

	if _, err := manager.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected parse error for expired token, got %v", err)
	}
}
