package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"docmanagement/internal/config"
	"docmanagement/internal/handler"
	"docmanagement/internal/httputil"
	"docmanagement/internal/middleware"
	"docmanagement/internal/repository/postgres"
	"docmanagement/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, tables, logger); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	limits := service.PageLimits{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}
	folderService := service.NewFolderService(folderRepo, txManager, limits, logger)
	docService := service.NewDocumentService(docRepo, folderRepo, txManager, limits, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, cfg.AppName, logger)
	docHandler := handler.NewDocumentHandler(docService, cfg.AppName, logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, folderHandler, docHandler, healthHandler)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → AccessLog → Recovery → Routes
	h = middleware.Recovery(logger)(h)
	h = middleware.AccessLog(logger)(h)
	h = middleware.RequestID()(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", httputil.RequestIDHeader},
		ExposedHeaders: []string{
			httputil.LinkHeader,
			httputil.TotalCountHeader,
			httputil.AlertHeader,
			httputil.AlertParamsHeader,
			httputil.RequestIDHeader,
			"Location",
		},
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
