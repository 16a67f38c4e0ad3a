package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"docmanagement/internal/config"
	"docmanagement/internal/repository/postgres"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Reverting the migrations drops documents before folders
	if err := postgres.Rollback(ctx, pool, postgres.NewTableNames(cfg.TablePrefix), logger); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Printf("All tables dropped successfully (prefix: %s)\n", cfg.TablePrefix)
}
