package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"investor-service/internal/app"
	"investor-service/internal/config"
	"investor-service/internal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to init container", zap.Error(err))
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("cleanup error", zap.Error(err))
		}
	}()

	lg.Info("worker started", zap.String("queue", cfg.Messaging.Queue))
	if err := app.RunWorker(ctx, c); err != nil && ctx.Err() == nil {
		lg.Error("worker stopped", zap.Error(err))
		return
	}
	lg.Info("worker stopped")
}
