package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the read-only translation API, health probes and metrics.
func NewRouter(h *Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)
	r.Handle("/metrics", metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/locales", h.ListLocales)
		r.Get("/locales/{locale}/{namespace}", h.GetNamespace)
		r.Get("/locales/{locale}/{namespace}/{key}", h.GetKey)
		r.Get("/namespaces/{namespace}", h.GetNamespaceNegotiated)
	})
	return r
}
