package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/forkful/recipe-catalog/backend/config"
	"github.com/forkful/recipe-catalog/backend/internal/database"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: migrate <file.sql>")
		os.Exit(1)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunSQLFile(db, path); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	fmt.Printf("Successfully applied %s\n", path)
}
