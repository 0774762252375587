package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/forkful/recipe-catalog/backend/config"
	"github.com/forkful/recipe-catalog/backend/internal/database"
	"github.com/forkful/recipe-catalog/backend/internal/ingest"
	"github.com/forkful/recipe-catalog/backend/internal/logger"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: ingest <recipes.json>")
		os.Exit(1)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zl.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		zl.Fatal("failed to read input file", zap.String("path", path), zap.Error(err))
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		zl.Fatal("input file is not a JSON array of recipes", zap.String("path", path), zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	summary := ingest.NewJob(db, zl).Run(context.Background(), records)

	zl.Info("ingestion finished",
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
	)
}
