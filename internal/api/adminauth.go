package api

import (
	"net/http"
	"strings"
	"time"

	"cleanbook/internal/auth"
	"cleanbook/pkg/config"
)

// AdminAuth guards the back-office endpoints.
//
// Expected header:
// - Authorization: Bearer <hosted-auth access token>
//
// In dev, if no JWT secret is configured, an X-Admin-Email header is accepted
// instead so the back-office can be exercised without a hosted auth project.
func AdminAuth(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token := strings.TrimSpace(authz[7:])
				u, err := auth.VerifyAccessToken(token, cfg.SupabaseJWTSecret, time.Now())
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid access token")
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
				return
			}

			// Dev fallback
			if cfg.AppEnv != "prod" && cfg.SupabaseJWTSecret == "" {
				email := strings.TrimSpace(r.Header.Get("X-Admin-Email"))
				if email != "" {
					u := &auth.VerifiedUser{UserID: "dev", Email: email}
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
					return
				}
			}

			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token")
		})
	}
}
