package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/config"
	"github.com/rpupo63/catalog-admin/dashboard"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the collaborators the console is built from.
type Dependencies struct {
	Catalog       catalog.Catalog
	Authenticator dashboard.Authenticator
	// Registry receives the console's HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry
}

func NewServer(settings config.Settings, deps Dependencies) (Server, error) {
	// Capture startup time
	startupTime := time.Now()

	router, err := newRouter(settings, deps, withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         settings.Address(),
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	startupTime time.Time
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(settings config.Settings, deps Dependencies, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	secret := settings.SessionSecret
	if secret == "" {
		log.Warn().Msg("SESSION_SECRET is not set, sessions will not survive a restart")
		secret = uuid.NewString() + uuid.NewString()
	}

	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	sessions := newSessionStore(sessionOptions{
		secret:   []byte(secret),
		ttl:      settings.SessionTTL,
		secure:   settings.SecureCookies,
		catalog:  deps.Catalog,
		pageSize: settings.ProductPageSize,
	})

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(newHTTPMetrics(deps.Registry).middleware)

	// Initialize all handlers
	handlers := initializeHandlers(deps, sessions, pages, router.startupTime)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(sessions)

	setupPublicRoutes(chiRouter, handlers, deps.Registry)
	setupConsoleRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
