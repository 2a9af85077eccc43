package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/datasets"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/llm"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/verify"
)

// Server wires the verification pipeline and dataset store behind HTTP
type Server struct {
	cfg     model.Config
	engine  *gin.Engine
	limiter *ClientLimiter
}

// New builds the HTTP server around the given provider
func New(cfg model.Config, provider llm.Provider) *Server {
	pipeline := verify.NewPipeline(provider, cfg.LLM, cfg.Probe)
	store := datasets.NewStore(cfg.Datasets)
	refresher := datasets.NewRefresher(cfg.Datasets, store, cfg.Probe.UserAgent)
	limiter := NewClientLimiter(cfg.Server.RateLimitPerMin, cfg.Server.RateLimitBurst)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(CORS(cfg.Server.AllowedOrigins))

	engine.GET("/health", HealthCheck)

	v1 := engine.Group("/v1", RateLimit(limiter))
	{
		v1.POST("/feed", HandleFeed(pipeline))
		v1.GET("/datasets", ListDatasets(store))
		v1.GET("/datasets/search", SearchDatasets(store))
		v1.GET("/datasets/:name", GetDataset(store))
		v1.POST("/datasets/refresh", RefreshDatasets(refresher))
	}

	return &Server{cfg: cfg, engine: engine, limiter: limiter}
}

// Engine exposes the router for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
// Idle rate-limiter entries are pruned periodically in the background.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.limiter.Prune(); n > 0 {
					slog.Debug("pruned idle rate-limit clients", "count", n)
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
