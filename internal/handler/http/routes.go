package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/balance", h.balance)
		r.Get("/transfers", h.transfers)
		r.Get("/version", h.version)
	})

	router.Method("GET", "/metrics", promhttp.HandlerFor(h.deps.Gatherer, promhttp.HandlerOpts{}))

	return router
}
