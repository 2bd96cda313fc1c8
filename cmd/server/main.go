package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zfogg/reelmatch/internal/config"
	"github.com/zfogg/reelmatch/internal/kernel"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"github.com/zfogg/reelmatch/internal/server"
	"github.com/zfogg/reelmatch/internal/telemetry"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== reelmatch server starting ===",
		zap.String("environment", cfg.Server.Environment),
	)

	metrics.Initialize()

	shutdownTracer, err := telemetry.InitTracer(telemetry.Config{
		ServiceName:  server.ServiceName,
		Environment:  cfg.Server.Environment,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		Enabled:      cfg.Telemetry.Enabled,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.FatalWithFields("Failed to initialize tracing", err)
	}

	k, err := kernel.Bootstrap(cfg)
	if err != nil {
		logger.FatalWithFields("Failed to initialize services", err)
	}
	k.OnCleanup(shutdownTracer)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	k.RunBackground(bgCtx)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewRouter(k, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("reelmatch server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalWithFields("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("Server forced to shutdown", err)
	}
	stopBackground()
	if err := k.Cleanup(ctx); err != nil {
		logger.WarnWithFields("Cleanup finished with errors", err)
	}

	logger.Log.Info("Server exited")
}
