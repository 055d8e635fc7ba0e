// Package main provides the entry point for the PressLink short link service.
//
//	@title			PressLink Short Link API
//	@version		1.0.0
//	@description	Short link and social preview service for the PressLink publishing platform.
//	@termsOfService	http://presslink.example/terms/
//
//	@contact.name	PressLink Support
//	@contact.email	support@presslink.example
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@externalDocs.description	OpenAPI Specification
//	@externalDocs.url			https://swagger.io/resources/open-api/
package main

import (
	"PressLink-Backend/internal/analytics"
	"PressLink-Backend/internal/cache"
	"PressLink-Backend/internal/config"
	"PressLink-Backend/internal/database"
	dirpostgres "PressLink-Backend/internal/directory/postgres"
	httpHandler "PressLink-Backend/internal/handler/http"
	"PressLink-Backend/internal/preview"
	"PressLink-Backend/internal/repository/postgres"
	"PressLink-Backend/internal/service"
	"PressLink-Backend/pkg/logger"
	"PressLink-Backend/pkg/random"
	"PressLink-Backend/pkg/useragent"
	"context"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "PressLink-Backend/docs" // Import swagger docs
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting PressLink short link service", zap.String("env", cfg.Env))

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Seed initial data if enabled
	if cfg.Database.SeedData {
		log.Info("seeding database with initial data (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	} else {
		log.Info("skipping database seeding (seed_data: false)")
	}

	// Initialize storage, article directory, and the optional resolve cache
	storage := postgres.New(db, log)
	directory := dirpostgres.New(db, log)

	var linkCache *cache.LinkCache
	if cfg.Redis.Enabled {
		linkCache = cache.New(&cfg.Redis, log)
	}
	defer linkCache.Close()

	// Initialize short link service
	generator := random.New(cfg.ShortLink.CodeLength)
	shortLinks := service.NewShortLink(storage, directory, generator, linkCache, &cfg.ShortLink, log)

	// Initialize the preview renderer
	classifier := useragent.NewCrawlerClassifier()
	renderer := preview.New(directory, classifier, &cfg.Site, &cfg.ShortLink, log)

	// Initialize the click analytics pipeline
	parser := useragent.NewParser(classifier, log)

	processorConfig := analytics.DefaultConfig()
	if cfg.Analytics.WorkerCount > 0 {
		processorConfig.WorkerCount = cfg.Analytics.WorkerCount
	}
	if cfg.Analytics.BufferSize > 0 {
		processorConfig.BufferSize = cfg.Analytics.BufferSize
	}

	processor := analytics.NewProcessor(storage, parser, log, processorConfig)
	if err := processor.Start(); err != nil {
		log.Fatal("failed to start analytics processor", zap.Error(err))
	}
	defer func() {
		if err := processor.Stop(); err != nil {
			log.Error("failed to stop analytics processor", zap.Error(err))
		}
	}()

	// Create the HTTP server
	httpAPIServer := httpHandler.NewServer(storage, directory, shortLinks, renderer, processor, log)
	httpMux := httpAPIServer.SetupRoutes()

	address := fmt.Sprintf(":%d", cfg.HTTPServer.Port)
	server := &http.Server{
		Addr:         address,
		Handler:      httpMux,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", address))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down PressLink short link service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}
