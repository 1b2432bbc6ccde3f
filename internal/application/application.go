package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/justinkworkman/FastChart/internal/api"
	"github.com/justinkworkman/FastChart/internal/chart"
	"github.com/justinkworkman/FastChart/internal/config"
	"github.com/justinkworkman/FastChart/internal/storage"
	"github.com/justinkworkman/FastChart/internal/worker"
)

// App encapsulates the application dependencies, render pool, and HTTP server.
type App struct {
	storage storage.Storage
	pool    *worker.Pool
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
	workers int
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if err := store.SetPalette(cfg.InitialPalette); err != nil {
		return nil, fmt.Errorf("failed to apply initial palette: %w", err)
	}

	pool := worker.NewPool(chart.New(), logger)
	handler := api.NewHandler(pool, store)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		storage: store,
		pool:    pool,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(cfg, router),
		workers: cfg.Workers,
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start launches the render pool and the HTTP server in a goroutine.
func (a *App) Start() error {
	a.pool.Start(a.workers)

	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown drains the HTTP server, then stops the render pool so in-flight
// reports finish before workers exit.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.pool.Stop()
	return err
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
