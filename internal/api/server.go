// Package api serves the sliding-window live playlists over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pwllr/airwave/internal/config"
)

// Server exposes playlist and metrics endpoints. Transcoder process
// management lives elsewhere; this surface only reads what the segmenter
// writes to disk.
type Server struct {
	cfg config.AppConfig
	log zerolog.Logger

	// now is stubbed in tests.
	now func() time.Time
}

func NewServer(cfg config.AppConfig, logger zerolog.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: logger,
		now: time.Now,
	}
}

// Router assembles the middleware stack and routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)
	if s.cfg.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(s.cfg.RateLimitPerMinute, time.Minute))
	}

	r.Get("/live/{channel}/live.m3u8", s.handlePlaylist)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
