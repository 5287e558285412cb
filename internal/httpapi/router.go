package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cleanbook/internal/api"
	"cleanbook/internal/audit"
	"cleanbook/internal/booking"
	"cleanbook/internal/catalog"
	"cleanbook/internal/faq"
	"cleanbook/internal/media"
	"cleanbook/internal/page"
	"cleanbook/internal/plan"
	"cleanbook/internal/pricing"
	"cleanbook/internal/sitesettings"
	"cleanbook/internal/testimonial"
	"cleanbook/internal/zone"
	"cleanbook/pkg/config"
	"cleanbook/pkg/mailer"
	"cleanbook/pkg/recaptcha"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	catalogRepo := catalog.NewRepository(deps.DB)
	auditRepo := audit.NewRepository(deps.DB)
	bookingRepo := booking.NewRepository(deps.DB)
	planRepo := plan.NewRepository(deps.DB)
	testimonialRepo := testimonial.NewRepository(deps.DB)
	faqRepo := faq.NewRepository(deps.DB)
	pageRepo := page.NewRepository(deps.DB)
	zoneRepo := zone.NewRepository(deps.DB)
	settingsRepo := sitesettings.NewRepository(deps.DB)
	mediaRepo := media.NewRepository(deps.DB)

	catalogHandlers := catalog.Handlers{Repo: catalogRepo}
	catalogAdmin := catalog.AdminHandlers{Repo: catalogRepo, Audit: auditRepo}
	pricingHandlers := pricing.Handlers{Catalog: catalogRepo}
	bookingHandlers := booking.Handlers{
		Cfg:      deps.Cfg,
		Catalog:  catalogRepo,
		Bookings: bookingRepo,
		Audit:    auditRepo,
		Recaptcha: recaptcha.Verifier{
			Secret:       deps.Cfg.Recaptcha.Secret,
			AllowMissing: deps.Cfg.Recaptcha.AllowMissing,
		},
		Mail: mailer.Client{
			APIKey:    deps.Cfg.Mail.SendGridAPIKey,
			FromEmail: deps.Cfg.Mail.FromEmail,
		},
	}
	planHandlers := plan.Handlers{Repo: planRepo}
	testimonialHandlers := testimonial.Handlers{Repo: testimonialRepo}
	faqHandlers := faq.Handlers{Repo: faqRepo}
	pageHandlers := page.Handlers{Repo: pageRepo}
	zoneHandlers := zone.Handlers{Repo: zoneRepo}
	settingsHandlers := sitesettings.Handlers{Repo: settingsRepo}
	mediaHandlers := media.Handlers{Repo: mediaRepo}

	// v1
	r.Route("/v1", func(r chi.Router) {
		// Public storefront APIs, consumed by a separate frontend domain.
		// Only allow CORS for explicitly configured origins.
		r.Group(func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.StorefrontAllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
				MaxAgeSeconds:  600,
			}))

			r.Get("/services", catalogHandlers.List)
			r.Get("/services/{slug}", catalogHandlers.Detail)
			r.Post("/services/{slug}/quote", pricingHandlers.Quote)

			r.Post("/bookings", bookingHandlers.Create)

			r.Get("/plans", planHandlers.List)
			r.Get("/testimonials", testimonialHandlers.ListPublic)
			r.Get("/faqs", faqHandlers.List)
			r.Get("/pages", pageHandlers.ListPublic)
			r.Get("/pages/{slug}", pageHandlers.GetPublic)
			r.Get("/zones", zoneHandlers.List)
			r.Get("/settings/{key}", settingsHandlers.Get)
		})

		// Back-office APIs (hosted auth access token required)
		r.Route("/admin", func(r chi.Router) {
			r.Use(api.AdminAuth(deps.Cfg))

			// Service catalog
			r.Post("/services", catalogAdmin.CreateService)
			r.Put("/services/{id}", catalogAdmin.UpdateService)
			r.Delete("/services/{id}", catalogAdmin.DeleteService)
			r.Get("/services/{id}/sections", catalogAdmin.ListSections)
			r.Put("/services/{id}/sections", catalogAdmin.UpdateSections)
			r.Get("/services/{id}/options", catalogAdmin.ListOptions)
			r.Post("/services/{id}/options", catalogAdmin.CreateOption)
			r.Put("/options/{optionID}", catalogAdmin.UpdateOption)
			r.Delete("/options/{optionID}", catalogAdmin.DeleteOption)
			r.Post("/options/{optionID}/choices", catalogAdmin.CreateChoice)
			r.Put("/choices/{choiceID}", catalogAdmin.UpdateChoice)
			r.Delete("/choices/{choiceID}", catalogAdmin.DeleteChoice)

			// Bookings
			r.Get("/bookings", bookingHandlers.List)
			r.Get("/bookings/{id}", bookingHandlers.Get)
			r.Patch("/bookings/{id}/status", bookingHandlers.PatchStatus)

			// Site content
			r.Post("/plans", planHandlers.Create)
			r.Put("/plans/{id}", planHandlers.Update)
			r.Delete("/plans/{id}", planHandlers.Delete)

			r.Get("/testimonials", testimonialHandlers.ListAdmin)
			r.Post("/testimonials", testimonialHandlers.Create)
			r.Put("/testimonials/{id}", testimonialHandlers.Update)
			r.Delete("/testimonials/{id}", testimonialHandlers.Delete)

			r.Post("/faqs", faqHandlers.Create)
			r.Put("/faqs/{id}", faqHandlers.Update)
			r.Delete("/faqs/{id}", faqHandlers.Delete)

			r.Get("/pages", pageHandlers.ListAdmin)
			r.Post("/pages", pageHandlers.Create)
			r.Put("/pages/{id}", pageHandlers.Update)
			r.Delete("/pages/{id}", pageHandlers.Delete)

			r.Post("/zones", zoneHandlers.Create)
			r.Put("/zones/{id}", zoneHandlers.Update)
			r.Delete("/zones/{id}", zoneHandlers.Delete)

			r.Put("/settings/{key}", settingsHandlers.Put)

			r.Get("/media", mediaHandlers.List)
			r.Post("/media", mediaHandlers.Create)
			r.Delete("/media/{id}", mediaHandlers.Delete)

			auditHandlers := auditHTTPHandlers{repo: auditRepo}
			r.Get("/audit", auditHandlers.ListRecent)
		})
	})

	return r
}

type auditHTTPHandlers struct {
	repo *audit.Repository
}

func (h auditHTTPHandlers) ListRecent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.ListRecent(r.Context(), 100)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list audit entries")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
