package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret"

func mintToken(t *testing.T, claims AccessTokenClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestVerifyAccessToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := mintToken(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: "admin@example.com",
		Role:  "authenticated",
	})

	u, err := VerifyAccessToken(s, testSecret, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.UserID != "user-1" || u.Email != "admin@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := mintToken(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		Role: "authenticated",
	})

	if _, err := VerifyAccessToken(s, testSecret, now); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerifyAccessToken_AnonRoleRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := mintToken(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Role: "anon",
	})

	if _, err := VerifyAccessToken(s, testSecret, now); err == nil {
		t.Fatalf("expected error for anon role")
	}
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := mintToken(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Role: "authenticated",
	})

	if _, err := VerifyAccessToken(s, "other-secret", now); err == nil {
		t.Fatalf("expected signature error")
	}
}
