package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/validation"
	"go.uber.org/zap"
)

// Server is the HTTP transport for the triage service
type Server struct {
	service         *core.TriageService
	validator       *validation.Validator
	logger          *zap.Logger
	listenAddr      string
	shutdownTimeout time.Duration
	httpServer      *http.Server
}

// NewServer creates a new HTTP API server
func NewServer(
	service *core.TriageService,
	validator *validation.Validator,
	logger *zap.Logger,
	listenAddr string,
	shutdownTimeout time.Duration,
) *Server {
	return &Server{
		service:         service,
		validator:       validator,
		logger:          logger,
		listenAddr:      listenAddr,
		shutdownTimeout: shutdownTimeout,
	}
}

// Router builds the chi router with all routes registered
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/submit-message", s.handleSubmitMessage)
	r.Get("/api", s.handleAPIOverview)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	s.logger.Info("HTTP API starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the HTTP server down gracefully
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
