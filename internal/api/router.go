// Package api serves recommendations over HTTP.
package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/0x5457/book-rec/internal/metrics"
	"github.com/0x5457/book-rec/internal/models"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Recommender is the engine contract the handlers depend on.
type Recommender interface {
	Explain(ctx context.Context, query string, k int) (recommend.Result, error)
	Detect(query string) []string
}

// Catalog is the read side of the catalog used by listing endpoints.
type Catalog interface {
	ByGenre(genre string) []models.Book
	Genres() []string
	Source() string
}

type Options struct {
	DefaultK          int
	MaxK              int
	StaticDir         string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type Server struct {
	engine  Recommender
	catalog Catalog
	opts    Options
	logger  zerolog.Logger
}

func NewServer(engine Recommender, catalog Catalog, opts Options, logger zerolog.Logger) *Server {
	if opts.DefaultK <= 0 {
		opts.DefaultK = recommend.DefaultK
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = time.Minute
	}
	return &Server{engine: engine, catalog: catalog, opts: opts, logger: logger}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.opts.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimitRequests, s.opts.RateLimitWindow))
		}
		r.Post("/recommend", s.handleRecommend)
		r.Get("/books", s.handleBooks)
		r.Get("/genres", s.handleGenres)
		r.Get("/genres/detect", s.handleDetect)
	})

	if s.opts.StaticDir != "" {
		if info, err := os.Stat(s.opts.StaticDir); err == nil && info.IsDir() {
			fs := http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir)))
			r.Handle("/static/*", fs)
		}
	}
	return r
}

// observe logs each request and records HTTP metrics by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		s.logger.Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}
