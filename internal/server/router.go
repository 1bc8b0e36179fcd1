package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/savioomio/sistema-notas-posto/internal/auth"
	"github.com/savioomio/sistema-notas-posto/internal/config"
	"github.com/savioomio/sistema-notas-posto/internal/events"
	"github.com/savioomio/sistema-notas-posto/internal/handlers"
	"github.com/savioomio/sistema-notas-posto/internal/httpx"
	"github.com/savioomio/sistema-notas-posto/internal/observability"
	"github.com/savioomio/sistema-notas-posto/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, hub *events.Hub, logger *zap.Logger, cfg config.Config) http.Handler {
	authSvc := auth.NewService(db, []byte(cfg.JWTSecret), cfg.TokenTTL, logger)

	clientStore := store.NewClientStore(db, hub)
	invoiceStore := store.NewInvoiceStore(db, hub)
	dashboardStore := store.NewDashboardStore(db)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	clientHandler := handlers.NewClientHandler(clientStore, logger)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceStore, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardStore, logger)
	eventsHandler := handlers.NewEventsHandler(hub, logger)

	metrics := observability.NewMetrics()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.RequestBodyLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		// EventSource cannot set an Authorization header, so the stream stays
		// open like the views it feeds.
		r.Get("/events", eventsHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(authSvc, logger))

			r.Get("/auth-test", authHandler.AuthTest)
			r.Put("/password", authHandler.UpdatePassword)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", clientHandler.List)
				r.Post("/", clientHandler.Create)
				r.Get("/search", clientHandler.Search)
				r.Get("/{id}", clientHandler.Get)
				r.Put("/{id}", clientHandler.Update)
				r.Delete("/{id}", clientHandler.Delete)
				r.Get("/{id}/statistics", clientHandler.Statistics)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", invoiceHandler.List)
				r.Post("/", invoiceHandler.Create)
				r.Get("/client/{clientId}", invoiceHandler.ListByClient)
				r.Get("/{id}", invoiceHandler.Get)
				r.Put("/{id}", invoiceHandler.Update)
				r.Put("/{id}/pay", invoiceHandler.Pay)
				r.Delete("/{id}", invoiceHandler.Delete)
			})

			r.Get("/dashboard", dashboardHandler.Get)
		})
	})

	return r
}
