package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/config"
	_ "storefront/docs"
	"storefront/routes"
)

// @title Storefront API
// @version 1.0
// @description Storefront and back-office shell in front of the shop REST backend.
// @BasePath /
func main() {
	cfg := config.LoadConfig()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger, err := config.InitLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.EnvFileLoaded {
		logger.Warn("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := routes.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to start", zap.Error(err))
	}
	defer app.Close()

	go app.Registry.RunSweeper(ctx, 10*time.Minute, 2*time.Hour)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.AppEnv),
		zap.String("backend", cfg.APIBaseURL),
		zap.String("state", cfg.StateBackend),
	)
	logger.Info("Swagger UI: http://localhost:" + cfg.Port + "/swagger/index.html")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
