package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims

	// Supabase access tokens carry the authenticated user's email and role.
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type VerifiedUser struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// VerifyAccessToken verifies a hosted-auth access token (JWT, HS256) against the
// project JWT secret. Only tokens with the "authenticated" role are accepted;
// issuance and refresh are entirely the hosted auth module's problem.
func VerifyAccessToken(tokenString string, secret string, now time.Time) (*VerifiedUser, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing jwt secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &AccessTokenClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.After(now) {
		return nil, fmt.Errorf("token not active yet")
	}

	if claims.Role != "authenticated" {
		return nil, fmt.Errorf("role %q not allowed", claims.Role)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("missing subject")
	}

	return &VerifiedUser{
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
