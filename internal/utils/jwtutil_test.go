package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, exp, err := GenerateToken(secret, 7, "admin", "owner", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Error("expiry is not in the future")
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "admin" || claims.Role != "owner" {
		t.Errorf("claims = %+v, want user 7/admin/owner", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken([]byte("right"), 1, "staff", "staff", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken([]byte("wrong"), token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	token, _, err := GenerateToken(secret, 1, "staff", "staff", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Error("expected error for expired token")
	}
}
