// Package server exposes a small read-only HTTP gateway in front of the
// osu! API clients.
//
// Routes:
//
//	GET /healthz
//	GET /metrics
//	GET /v1/users/{user}                       ?mode= &event_days=
//	GET /v1/users/{user}/best                  ?mode= &limit= &filter=
//	GET /v1/users/{user}/recent                ?mode= &limit= &filter=
//	GET /v1/beatmaps/{id}
//	GET /v1/matches/{id}
//	GET /v2/beatmaps/{id}
//	GET /v2/beatmaps/{id}/scores               ?mode= &mods= &type=
//	GET /v2/beatmaps/{id}/scores/users/{user}  ?mode= &mods=
//
// A {user} is an id, or a name; "@123" forces the name reading of an
// all-digit input. Failures are JSON objects with an "error" field: no
// data maps to 404, a malformed upstream payload to 502, and an upstream
// HTTP error keeps its status.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rcoplo/osu-api-go/apiv1"
	"github.com/rcoplo/osu-api-go/apiv2"
	"github.com/rcoplo/osu-api-go/filter"
)

// Server holds the gateway's dependencies. Either API may be absent; its
// routes then answer 503.
type Server struct {
	v1        apiv1.API
	v2        apiv2.API
	gatherer  prometheus.Gatherer
	compiler  filter.Compiler
	evaluator filter.Evaluator
	logger    zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithV1 serves the /v1 routes from api.
func WithV1(api apiv1.API) Option {
	return func(s *Server) {
		s.v1 = api
	}
}

// WithV2 serves the /v2 routes from api.
func WithV2(api apiv2.API) Option {
	return func(s *Server) {
		s.v2 = api
	}
}

// WithGatherer sets the metrics served on /metrics. The default is
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// New creates a Server.
func New(logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		gatherer:  prometheus.DefaultGatherer,
		compiler:  filter.NewExprCompiler(filter.WithCache(64)),
		evaluator: filter.NewConcurrentEvaluator(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.require(s.v1 != nil, "v1"))
		r.Get("/users/{user}", s.handleV1User)
		r.Get("/users/{user}/best", s.handleV1UserBest)
		r.Get("/users/{user}/recent", s.handleV1UserRecent)
		r.Get("/beatmaps/{id}", s.handleV1Beatmap)
		r.Get("/matches/{id}", s.handleV1Match)
	})

	r.Route("/v2", func(r chi.Router) {
		r.Use(s.require(s.v2 != nil, "v2"))
		r.Get("/beatmaps/{id}", s.handleV2Beatmap)
		r.Get("/beatmaps/{id}/scores", s.handleV2BeatmapScores)
		r.Get("/beatmaps/{id}/scores/users/{user}", s.handleV2UserScore)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such route"})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then drains open requests
// for up to ten seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Gateway listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) require(ok bool, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if ok {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: name + " API not configured"})
		})
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request served")
	})
}
