package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupPublicRoutes sets up the routes that need no session
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, registry *prometheus.Registry) {
	r.Get("/healthz", handlers.healthHandler.health())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/login", handlers.loginHandler.showLogin())
		r.Post("/login", handlers.loginHandler.login())
		r.Post("/logout", handlers.loginHandler.logout())
	})
}

// setupConsoleRoutes sets up all screens behind the session gate
func setupConsoleRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", http.RedirectHandler("/products", http.StatusFound).ServeHTTP)

		// Image upload
		r.Get("/upload", handlers.uploadHandler.showUpload())
		r.Post("/upload", handlers.uploadHandler.upload())

		// Product paging and filters
		r.Post("/products/next", handlers.productHandler.next())
		r.Post("/products/previous", handlers.productHandler.previous())
		r.Post("/products/filter", handlers.productHandler.filter())
		r.Post("/products/clear", handlers.productHandler.clear())

		// Generic screen endpoints
		r.Route("/{screen}", func(r chi.Router) {
			r.Get("/", handlers.screenHandler.show())
			r.Post("/refresh", handlers.screenHandler.refresh())
			r.Post("/add", handlers.screenHandler.openAdd())
			r.Post("/edit/{id}", handlers.screenHandler.openEdit())
			r.Post("/delete/{id}", handlers.screenHandler.openDelete())
			r.Post("/cancel", handlers.screenHandler.cancel())
			r.Post("/submit", handlers.screenHandler.submit())
			r.Post("/confirm-delete", handlers.screenHandler.confirmDelete())
		})
	})
}
