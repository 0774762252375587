package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/forkful/recipe-catalog/backend/config"
	"github.com/forkful/recipe-catalog/backend/internal/api"
	"github.com/forkful/recipe-catalog/backend/internal/database"
	"github.com/forkful/recipe-catalog/backend/internal/logger"
	"github.com/forkful/recipe-catalog/backend/internal/router"
	"github.com/forkful/recipe-catalog/backend/internal/server"
	"github.com/forkful/recipe-catalog/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zl.Sync()

	db, err := database.New(cfg)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	recipeService := service.NewRecipeService(db, zl)
	recipeHandler := api.NewRecipeHandler(recipeService, zl)

	srv := server.New(router.SetupRouter(recipeHandler, cfg.CORSOrigin), cfg.ServerPort)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		zl.Info("starting server", zap.String("port", cfg.ServerPort))
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zl.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("server shutdown error", zap.Error(err))
	}
	zl.Info("server stopped")
}
