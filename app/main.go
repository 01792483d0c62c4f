package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skywatch/stargazer/app/api"
	"github.com/skywatch/stargazer/app/apod"
	"github.com/skywatch/stargazer/app/autopopulate"
	"github.com/skywatch/stargazer/app/cfg"
	"github.com/skywatch/stargazer/app/database"
	"github.com/skywatch/stargazer/app/extract"
	"github.com/skywatch/stargazer/app/images"
	"github.com/skywatch/stargazer/app/sources"
	"github.com/skywatch/stargazer/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	log.Printf("Starting Stargazer server (version %s)...", appCfg.Version)

	// Database connection
	log.Printf("Opening database at %s...", appCfg.DBPath)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Printf("Database migrated to version %d (dirty: %v)", version, dirty)

	// Initialize repositories
	objectRepo := database.NewObjectRepository(db)
	observationRepo := database.NewObservationRepository(db)
	guideRepo := database.NewGuideRepository(db)
	tipRepo := database.NewTipRepository(db)
	apodRepo := database.NewApodRepository(db)

	if err := database.Seed(objectRepo, guideRepo, tipRepo); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Initialize core components
	httpClient := &http.Client{Timeout: 30 * time.Second}

	extractor := extract.NewExtractor()
	resolver := images.NewResolver(httpClient, appCfg.UserAgent)

	apodClient := apod.NewClient(appCfg.NASAAPIKey)
	apodService := apod.NewService(apodClient, apodRepo, time.Local)

	// Suggestion sources, in merge-precedence order: the curated catalog
	// first, then the configured feeds and sky-guide article
	suggestionSources := []autopopulate.Source{sources.NewCatalogSource()}
	for _, channelID := range appCfg.YouTubeChannels {
		name := fmt.Sprintf("YouTube (%s)", channelID)
		suggestionSources = append(suggestionSources,
			sources.NewYouTubeSource(name, channelID, httpClient, appCfg.UserAgent))
	}
	if appCfg.SkyGuideURL != "" {
		suggestionSources = append(suggestionSources,
			sources.NewArticleSource("Sky Guide", appCfg.SkyGuideURL, httpClient, appCfg.UserAgent))
	}
	log.Printf("Configured %d suggestion sources", len(suggestionSources))

	orchestrator := autopopulate.NewOrchestrator(suggestionSources, extractor, objectRepo)

	// Initialize and start scheduler
	log.Printf("Starting background scheduler with %d workers...", appCfg.WorkerCount)
	taskScheduler := tasks.NewScheduler(apodService, objectRepo, resolver)
	taskScheduler.Start()
	defer taskScheduler.Stop()

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(objectRepo, observationRepo, guideRepo, tipRepo,
		apodService, apodClient, resolver, orchestrator)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Picture of the day: http://localhost:%s/api/apod", appCfg.Port)
		log.Printf("  Celestial objects:  http://localhost:%s/api/celestial-objects", appCfg.Port)
		log.Printf("  Observations:       http://localhost:%s/api/observations", appCfg.Port)
		log.Printf("  Auto-populate:      http://localhost:%s/api/auto-populate/preview (POST)", appCfg.Port)
		log.Printf("  Health check:       http://localhost:%s/health", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Stargazer server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("Background scheduler stopped")

	log.Println("Stargazer server shutdown complete")
}
