package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/luminadental/booking-platform/internal/booking"
	"github.com/luminadental/booking-platform/internal/catalog"
	httpmiddleware "github.com/luminadental/booking-platform/internal/http/middleware"
	"github.com/luminadental/booking-platform/internal/siteconfig"
	"github.com/luminadental/booking-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger            *logging.Logger
	BookingHandler    *booking.Handler
	CatalogHandler    *catalog.Handler
	SiteConfigHandler *siteconfig.Handler

	AdminJWTSecret     string
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler

	// Rate limiting for POST /api/bookings. Zero disables it.
	BookingRatePerSec float64
	BookingRateBurst  int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Route("/api", func(api chi.Router) {
			api.Get("/services", cfg.CatalogHandler.ListServices)
			api.Get("/professionals", cfg.CatalogHandler.ListProfessionals)
			api.Get("/availability", cfg.BookingHandler.GetAvailability)
			api.Get("/availability/days", cfg.BookingHandler.GetBookableDays)
			if cfg.SiteConfigHandler != nil {
				api.Get("/site-config", cfg.SiteConfigHandler.GetConfig)
			}

			submit := api
			if cfg.BookingRatePerSec > 0 {
				submit = api.With(httpmiddleware.RateLimit(cfg.BookingRatePerSec, cfg.BookingRateBurst))
			}
			submit.Post("/bookings", cfg.BookingHandler.SubmitBooking)
		})
	})

	// Admin routes (protected by JWT)
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))

		admin.Get("/appointments", cfg.BookingHandler.ListAppointments)
		admin.Patch("/appointments/{id}", cfg.BookingHandler.UpdateAppointment)
		admin.Post("/appointments/{id}/status", cfg.BookingHandler.SetAppointmentStatus)

		admin.Get("/services", cfg.CatalogHandler.ListServices)
		admin.Post("/services", cfg.CatalogHandler.CreateService)
		admin.Patch("/services/{id}", cfg.CatalogHandler.UpdateService)
		admin.Delete("/services/{id}", cfg.CatalogHandler.DeleteService)

		admin.Get("/professionals", cfg.CatalogHandler.ListProfessionals)
		admin.Post("/professionals", cfg.CatalogHandler.CreateProfessional)
		admin.Patch("/professionals/{id}", cfg.CatalogHandler.UpdateProfessional)
		admin.Delete("/professionals/{id}", cfg.CatalogHandler.DeleteProfessional)

		if cfg.SiteConfigHandler != nil {
			admin.Put("/site-config", cfg.SiteConfigHandler.UpdateConfig)
		}
	})

	return r
}
