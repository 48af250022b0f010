package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the catalog API under /api.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/anime/{id}", h.getAnime)
		r.Get("/anime/{id}/characters", h.getCharacters)
		r.Get("/anime/{id}/recommendations", h.getRecommendations)
		r.Get("/top", h.list(h.catalog.GetTopAnime))
		r.Get("/seasons/now", h.list(h.catalog.GetCurrentSeasonAnime))
		r.Get("/seasons/upcoming", h.list(h.catalog.GetUpcomingAnime))
		r.Get("/search", h.search)
		r.Get("/filters", h.filters)
		r.Get("/genres/{id}", h.genre)
	})

	return r
}

func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("Handled request")
		})
	}
}
