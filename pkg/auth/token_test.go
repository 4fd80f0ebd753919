package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	token, err := m.Issue(42, "reader@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "reader@example.com" {
		t.Fatalf("Email = %q, want reader@example.com", claims.Email)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Nanosecond)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	token, err := m.Issue(1, "reader@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)
	token, err := issuer.Issue(1, "reader@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("expected token signed with other secret to be rejected")
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("   ", time.Hour); err == nil {
		t.Fatalf("expected constructor error for empty secret")
	}
}
