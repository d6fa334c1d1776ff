// Package httpapi exposes the billing dashboard API over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/diillson/aws-billing-dashboard-go/internal/application/usecase"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/logging"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
	"go.uber.org/zap"
)

// Server is the HTTP server for the billing API and, in production mode, the
// static dashboard assets.
type Server struct {
	config       *types.Config
	useCase      *usecase.BillingUseCase
	metrics      *Metrics
	httpServer   *http.Server
	shutdownOnce sync.Once
}

// NewServer creates a new API server.
func NewServer(cfg *types.Config, uc *usecase.BillingUseCase) *Server {
	return &Server{
		config:  cfg,
		useCase: uc,
		metrics: NewMetrics(),
	}
}

// Handler builds the full route table. Exposed separately from Start so tests
// can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/costs", s.route("/api/costs", s.handleCosts))
	mux.Handle("GET /api/costs/trend", s.route("/api/costs/trend", s.handleTrend))
	mux.Handle("GET /api/health", s.route("/api/health", s.handleHealth))
	// CORS preflight for any API path; withCORS answers OPTIONS itself.
	mux.Handle("OPTIONS /api/", withCORS(http.NotFoundHandler()))
	mux.Handle("GET /metrics", s.metrics.Handler())

	// The SPA build is only served in production; in development the frontend
	// dev server proxies API calls here instead.
	if s.config.Production {
		mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}

	return mux
}

func (s *Server) route(path string, h http.HandlerFunc) http.Handler {
	return s.withObservability(path, withCORS(h))
}

// Start runs the server and blocks until the context is cancelled, a
// shutdown signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.RequestTimeout,
		WriteTimeout: s.config.RequestTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logging.Logger.Info("starting billing API server",
			zap.String("address", s.config.ListenAddress),
			zap.Bool("production", s.config.Production))

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logging.Logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		logging.Logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}
	})
	return shutdownErr
}
