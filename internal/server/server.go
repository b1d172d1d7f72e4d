// Package server exposes the analyzers over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/trustbuddy/internal/logging"
	"github.com/ppiankov/trustbuddy/internal/model"
	"github.com/ppiankov/trustbuddy/internal/session"
	"github.com/ppiankov/trustbuddy/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Analyzer is the subset of the analysis facade the handlers use
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*model.ClaimVerdict, error)
	ScanURL(ctx context.Context, rawURL string) (*model.URLReport, error)
	AnalyzeImage(ctx context.Context, data []byte, filename string) (*model.ImageVerdict, error)
	RunQuiz(t *session.Tally) model.QuizOutcome
}

// Server serves the TrustBuddy API
type Server struct {
	cfg      model.ServerConfig
	session  model.SessionConfig
	analyzer Analyzer
	sessions *session.Store
	limiter  *worker.Limiter
	logger   *zap.Logger
	engine   *gin.Engine
}

// New builds the server and its routes
func New(cfg *model.Config, analyzer Analyzer, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	s := &Server{
		cfg:      cfg.Server,
		session:  cfg.Session,
		analyzer: analyzer,
		sessions: session.NewStore(cfg.Session.IdleTTL, cfg.Cache.CleanupInterval),
		limiter:  worker.NewLimiter(cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst),
		logger:   logging.OrNop(logger),
	}

	g := gin.New()
	g.Use(gin.Recovery(), requestLogger(s.logger))
	s.attachRoutes(g)
	s.engine = g
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("TrustBuddy API listening", zap.String("addr", s.cfg.Addr))

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down", zap.Duration("timeout", shutdownTimeout))
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
