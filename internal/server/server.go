// Package server hosts the treemap page and its JSON API over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/treemap/internal/history"
	"github.com/ziadkadry99/treemap/internal/pipeline"
	"github.com/ziadkadry99/treemap/internal/render"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool   // allow all CORS origins (dev mode)
	Dataset  string // key used when a request has no data parameter
	Render   render.Options
}

// Server serves rendered treemaps.
type Server struct {
	cfg        Config
	runner     *pipeline.Runner
	history    *history.Store
	feed       *Feed
	stopWatch  func()
	router     chi.Router
	httpServer *http.Server
}

// New creates a server that renders through runner. store may be nil, in
// which case the history routes are not mounted.
func New(cfg Config, runner *pipeline.Runner, store *history.Store) *Server {
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		history: store,
		feed:    NewFeed(),
	}
	s.stopWatch = runner.Watch(s.feed.Publish)

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The feed is long-lived and stays outside the request timeout.
	r.Get("/ws", s.feed.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Get("/", s.handlePage)
		r.Get("/treemap.svg", s.handleSVG)
		r.Get("/api/datasets", s.handleDatasets)
		r.Get("/api/layout", s.handleLayout)

		if s.history != nil {
			history.RegisterRoutes(r, s.history)
		}
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("treemap server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes feed connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopWatch()
	s.feed.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
