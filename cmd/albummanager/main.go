package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/albummanager/app/albums"
	"github.com/dmitrymomot/albummanager/core/config"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg albums.Config
	config.MustLoad(&cfg)

	log := albums.NewLogger(cfg, logger.WithContextExtractors(middleware.RequestIDExtractor))
	logger.SetAsDefault(log)

	app, err := albums.New(albums.WithConfig(cfg), albums.WithLogger(log))
	if err != nil {
		log.Error("failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("application stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("application stopped")
}
