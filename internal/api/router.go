package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/ChristianBello1/hosting/internal/api/handlers"
	"github.com/ChristianBello1/hosting/internal/auth"
	"github.com/ChristianBello1/hosting/internal/monitoring"
	"github.com/ChristianBello1/hosting/internal/services"
	"github.com/ChristianBello1/hosting/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	corsOrigin string,
	adminSvc services.AdminServiceProvider,
	clientSvc services.ClientServiceProvider,
	alertSvc services.AlertServiceProvider,
	fileSvc services.FileServiceProvider,
	monitorSvc *monitoring.Service,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the dashboard
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rate limit tiers
	authLimiter := newIPRateLimiter(rate.Every(authWindow/authLimitPerWindow), authLimitPerWindow)
	apiLimiter := newIPRateLimiter(perMinute(apiLimitPerMinute), apiLimitPerMinute)
	monitoringLimiter := newIPRateLimiter(perMinute(monitoringLimitPerMinute), monitoringLimitPerMinute)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(adminSvc)
	clientHandler := handlers.NewClientHandler(clientSvc)
	monitoringHandler := handlers.NewMonitoringHandler(monitorSvc, alertSvc, clientSvc)
	fileHandler := handlers.NewFileHandler(fileSvc)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Live alert feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.With(authLimiter.Middleware).Post("/admin/register", authHandler.Register)
			r.With(authLimiter.Middleware).Post("/admin/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(apiLimiter.Middleware)
				r.Use(auth.JWTMiddleware())

				r.Get("/admin/me", authHandler.GetMe)

				r.Post("/clients/add", clientHandler.Create)
				r.Get("/clients", clientHandler.GetAll)
				r.Route("/clients/{id}", func(r chi.Router) {
					r.Get("/", clientHandler.Get)
					r.Patch("/plan", clientHandler.UpdatePlan)
					r.Patch("/status", clientHandler.UpdateStatus)
				})
			})
		})

		// Monitoring sits behind its own, higher-throughput limiter because
		// the dashboard polls it for every visible client.
		r.Route("/monitoring", func(r chi.Router) {
			r.Use(monitoringLimiter.Middleware)
			r.Use(auth.JWTMiddleware())

			r.Get("/resources/{clientId}", monitoringHandler.GetResources)
			r.Get("/alerts", monitoringHandler.GetAlerts)
			// chi requires a single param name per position, so both the
			// per-client listing and the acknowledge route use {id}.
			r.Get("/alerts/{id}", monitoringHandler.GetClientAlerts)
			r.Patch("/alerts/{id}/acknowledge", monitoringHandler.AcknowledgeAlert)
		})

		r.Route("/files", func(r chi.Router) {
			r.Use(apiLimiter.Middleware)
			r.Use(auth.JWTMiddleware())

			r.Route("/{clientId}", func(r chi.Router) {
				r.Get("/", fileHandler.List)
				r.Delete("/", fileHandler.Delete)
				r.Get("/content", fileHandler.ReadContent)
				r.Put("/content", fileHandler.WriteContent)
				r.Post("/directory", fileHandler.CreateDirectory)
				r.Post("/move", fileHandler.Move)
			})
		})
	})

	return r
}
