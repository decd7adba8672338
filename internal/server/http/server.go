// Package httpserver provides the HTTP REST API server for the news API service.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/newsnexus/news-api/internal/database"
	"github.com/newsnexus/news-api/internal/events"
	"github.com/newsnexus/news-api/internal/observability"
	"github.com/newsnexus/news-api/internal/repository"
)

// healthChecker reports backing-store health for the liveness and
// readiness endpoints. Satisfied by *database.DB.
type healthChecker interface {
	Health(ctx context.Context) database.HealthStatus
}

// Server is the HTTP REST API server.
type Server struct {
	router      chi.Router
	httpServer  *http.Server
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	topicRepo   repository.TopicRepository
	userRepo    repository.UserRepository
	db          healthChecker
	publisher   events.Publisher
	metrics     *observability.Metrics
	logger      zerolog.Logger
	limiter     *rate.Limiter
}

// Config holds HTTP server configuration.
type Config struct {
	Address          string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	db healthChecker,
	publisher events.Publisher,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		db:          db,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger.With().Str("component", "http-server").Logger(),
	}

	if cfg.RateLimitEnabled {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(s.requestLoggingMiddleware)
	r.Use(s.metricsMiddleware)
	if s.limiter != nil {
		r.Use(s.rateLimitMiddleware)
	}
	r.Use(jsonContentTypeMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "path not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.getEndpoints)

		r.Get("/topics", s.listTopics)
		r.Get("/users/{username}", s.getUser)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", s.listArticles)
			r.Post("/", s.createArticle)

			r.Route("/{articleID}", func(r chi.Router) {
				r.Get("/", s.getArticle)
				r.Patch("/", s.updateArticleVotes)
				r.Delete("/", s.deleteArticle)
				r.Get("/comments", s.listArticleComments)
				r.Post("/comments", s.createComment)
			})
		})

		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.Patch("/", s.updateCommentVotes)
			r.Delete("/", s.deleteComment)
		})
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router returns the server's router for serving through a test server.
func (s *Server) Router() chi.Router {
	return s.router
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status == "healthy" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": health.Status})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":   "unhealthy",
		"database": health.Status,
		"error":    health.Error,
	})
}

// readinessHandler returns readiness status.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": health.Status,
			"error":    health.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response in the {msg} shape.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"msg": message,
	})
}
