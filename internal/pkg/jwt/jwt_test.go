package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, jti, expiresAt, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty jti")
	}
	if time.Until(expiresAt) < 59*time.Minute {
		t.Fatalf("expected expiry near one hour out, got %s", expiresAt)
	}

	claims, err := svc.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.ID != jti {
		t.Fatalf("expected jti %s, got %s", jti, claims.ID)
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)

	access, err := svc.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate access failed: %v", err)
	}
	if _, err := svc.ValidateRefreshToken(access); err == nil {
		t.Fatal("expected access token to fail refresh validation")
	}

	refresh, _, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate refresh failed: %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); err == nil {
		t.Fatal("expected refresh token to fail access validation")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := svc.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)
	other := NewService("other-secret", time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := other.ValidateAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHashRefreshTokenIsStable(t *testing.T) {
	if HashRefreshToken("abc") != HashRefreshToken("abc") {
		t.Fatal("expected stable hash")
	}
	if HashRefreshToken("abc") == HashRefreshToken("abd") {
		t.Fatal("expected different tokens to hash differently")
	}
}
