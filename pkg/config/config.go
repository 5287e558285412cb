package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Supabase/hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	// SupabaseJWTSecret verifies the HS256 access tokens minted by the hosted
	// auth module. Token issuance itself stays on the hosted side.
	SupabaseJWTSecret string

	// StorefrontAllowedOrigins is a comma-separated allowlist of origins allowed
	// to call the public storefront endpoints. Example:
	//   https://www.cleanbook.example,http://localhost:5173
	StorefrontAllowedOrigins []string

	Recaptcha RecaptchaConfig
	Mail      MailConfig
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type RecaptchaConfig struct {
	Secret string

	// AllowMissing accepts submissions without a captcha token.
	// Local dev convenience; never set in production.
	AllowMissing bool
}

type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string

	// AdminEmail receives the new-booking notification (optional).
	AdminEmail string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "cleanbook"),
			User:     env("DB_USER", "cleanbook"),
			Password: env("DB_PASSWORD", "cleanbook"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},

		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),

		StorefrontAllowedOrigins: envList("STOREFRONT_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),

		Recaptcha: RecaptchaConfig{
			Secret:       os.Getenv("RECAPTCHA_SECRET"),
			AllowMissing: os.Getenv("ALLOW_NO_RECAPTCHA") == "true",
		},
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromEmail:      env("MAIL_FROM", "no-reply@example.com"),
			AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		},
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			s := v[start:i]
			start = i + 1
			// trim spaces
			for len(s) > 0 && (s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r') {
				s = s[1:]
			}
			for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t' || s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
				s = s[:len(s)-1]
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
