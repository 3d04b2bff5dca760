package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coop-budget/internal/api"
	"coop-budget/internal/config"
	"coop-budget/internal/data"
	"coop-budget/internal/logger"
	"coop-budget/internal/metrics"
	"coop-budget/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if wd, err := os.Getwd(); err == nil {
		log.Info("Working directory", zap.String("dir", wd))
	}

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal("Failed to open exercise store", zap.String("path", cfg.Store.Path), zap.Error(err))
	}
	defer func() { _ = s.Close() }()

	cache := data.NewResultCache(cfg.Cache.TTL)
	defer cache.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	router := api.NewRouter(api.Deps{
		Log:         log,
		Store:       s,
		Cache:       cache,
		Metrics:     m,
		Gatherer:    registry,
		DatasetsDir: cfg.Datasets.Dir,
		CORSOrigins: cfg.HTTP.CORSAllowOrigins,
		StaticDir:   cfg.HTTP.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting API server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Path),
			zap.String("datasets", cfg.Datasets.Dir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
