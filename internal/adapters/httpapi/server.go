// Package httpapi exposes the journal service operations as a JSON HTTP API.
// Responses are plain data records so any front end can consume them.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tradejournal/internal/app"
	"tradejournal/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds configuration for the HTTP server.
type Config struct {
	Port    int
	Logger  ports.Logger
	Service *app.JournalService
}

// Server wraps the chi router and the underlying http.Server.
type Server struct {
	httpServer *http.Server
	logger     ports.Logger
}

// New creates the HTTP server with all routes registered.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil || cfg.Service == nil {
		return nil, fmt.Errorf("missing required dependencies for HTTP server")
	}
	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	h := &Handlers{service: cfg.Service, logger: cfg.Logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HandleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/trades", h.HandleListTrades)
		r.Post("/trades", h.HandleRecordTrade)
		r.Get("/trades/summary", h.HandleGetSummary)
		r.Get("/trades/{ticker}/linkage", h.HandleGetLinkage)
		r.Get("/trades/{ticker}/position", h.HandleGetPosition)
		r.Get("/behaviors", h.HandleGetBehaviorStats)
		r.Get("/sectors", h.HandleGetSectorAllocation)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: cfg.Logger,
	}, nil
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "HTTP server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request with status and duration.
func requestLogger(log ports.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug(r.Context(), "Request handled", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
			})
		})
	}
}
