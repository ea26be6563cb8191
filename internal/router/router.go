package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tableside-pos/api/internal/config"
	"github.com/tableside-pos/api/internal/handler"
	"github.com/tableside-pos/api/internal/metrics"
	mw "github.com/tableside-pos/api/internal/middleware"
	"github.com/tableside-pos/api/internal/ws"
	"go.uber.org/zap"
)

// Store is every query the routes run. Satisfied by *database.Queries.
type Store interface {
	mw.EmployeeStore
	handler.AuthStore
	handler.CheckoutStore
	handler.SurchargeStore
	handler.IntakeStore
}

// Dispatcher settles checkouts and opens phone orders.
// Satisfied by *service.Dispatcher.
type Dispatcher interface {
	handler.Dispatcher
	handler.PhoneOrderOpener
}

// New creates a Chi router with all application routes wired up.
// Applies authentication, outlet scoping, and role-based middleware as needed.
func New(cfg *config.Config, store Store, dispatcher Dispatcher, hub *ws.Hub, m *metrics.Metrics, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(store, cfg.JWTSecret, logger)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/outlets/{oid}/notifications", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret, store))

		// Outlet-scoped routes
		r.Route("/outlets/{oid}", func(r chi.Router) {
			r.Use(mw.RequireOutlet)

			checkoutHandler := handler.NewCheckoutHandler(store, dispatcher, hub, logger)
			checkoutHandler.RegisterRoutes(r)

			intakeHandler := handler.NewIntakeHandler(store, dispatcher, logger)
			intakeHandler.RegisterRoutes(r)

			surchargeHandler := handler.NewSurchargeHandler(store, logger)
			r.Route("/surcharges", surchargeHandler.RegisterRoutes)
		})
	})

	logger.Debug("router initialized")
	return r
}
