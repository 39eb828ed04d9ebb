package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/ttv-club/matchday/app/shared/attr"
)

// NewRouter assembles the API surface.
func NewRouter(
	roster *RosterHandler,
	session *SessionHandler,
	archive *ArchiveHandler,
	registry *prometheus.Registry,
	requestsPerSecond float64,
	burst int,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationID)
	r.Use(rateLimit(requestsPerSecond, burst))

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/roster", roster.Routes())
		r.Mount("/session", session.Routes())
		r.Mount("/archive", archive.Routes())
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// correlationID threads the chi request id through as the correlation id the
// services log under.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			r = r.WithContext(attr.WithCorrelationID(r.Context(), reqID))
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a global token bucket. Club traffic is tiny; this only
// guards against a runaway client.
func rateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
