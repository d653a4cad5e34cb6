// chainsight/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsintel/chainsight/internal/api"
	"github.com/opsintel/chainsight/internal/cache"
	"github.com/opsintel/chainsight/internal/config"
	"github.com/opsintel/chainsight/internal/service"
	"github.com/opsintel/chainsight/internal/storage"
	"github.com/opsintel/chainsight/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.UseJSON()
	}

	// Initialize snapshot cache
	snapshotCache, err := cache.NewSnapshotCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		snapshotCache = cache.NewNoopSnapshotCache()
	}

	// Initialize services
	opts := []service.Option{}
	if cfg.Storage.Enabled {
		store, err := storage.NewMinioStorage(cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		opts = append(opts, service.WithObjectStorage(store, cfg.Storage.Prefix))
	}
	insights := service.NewInsightService(cfg.App.DatasetPath, snapshotCache, opts...)
	uploads := service.NewUploadService(cfg.App.UploadDir, insights)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Insights: insights,
		Uploads:  uploads,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
