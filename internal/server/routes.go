package server

import (
	"net/http"

	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func newRouter(collector *metrics.Collector, log *logger.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withTraceID(log))
	router.Use(withLogging)

	router.Get("/healthz", healthz)
	router.Method(http.MethodGet, "/metrics", collector.Handler())

	return router
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
