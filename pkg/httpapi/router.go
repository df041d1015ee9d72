package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/curelink/disha/pkg/metrics"
)

// NewRouter assembles the public surface: the chat REST endpoints, the
// websocket upgrade path, a health probe and the metrics scrape target.
func NewRouter(handler *Handler, wsHandler *WSHandler, limiter *RateLimiter, registry *prometheus.Registry, corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Route("/api/chat", func(r chi.Router) {
		r.Get("/user/{userID}", handler.GetUser)
		r.Post("/user/{userID}/initialize", handler.InitializeChat)
		r.Get("/user/{userID}/messages", handler.GetMessages)
		r.With(limiter.Middleware).Post("/user/{userID}/message", handler.SendMessage)
		r.Get("/ws/{userID}", wsHandler.ServeWS)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
