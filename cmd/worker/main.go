package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"hotel-backend/pkg/container"
	"hotel-backend/pkg/logger"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	if envErr != nil {
		logger.Info("No .env file found, using system environment variables", nil)
	}

	c, err := container.NewContainer()
	if err != nil {
		logger.Error("[Container] Failed to initialize", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	cfg := loadConfig(c.Config)
	handlers := initializeHandlers(c)
	srv := setupAsynqServer(cfg, handlers)

	if err := startServices(c, cfg); err != nil {
		logger.Error("[Startup] Health check failed", err)
		srv.Shutdown()
		return
	}

	waitForShutdown(srv)
}

func waitForShutdown(srv *asynqServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping...", nil)
	srv.Shutdown()
	logger.Info("[Shutdown] Stopped", nil)
}
