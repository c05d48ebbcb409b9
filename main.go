package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/api"
	"github.com/ChristianBello1/hosting/internal/api/handlers"
	"github.com/ChristianBello1/hosting/internal/config"
	"github.com/ChristianBello1/hosting/internal/database"
	"github.com/ChristianBello1/hosting/internal/logger"
	"github.com/ChristianBello1/hosting/internal/monitoring"
	"github.com/ChristianBello1/hosting/internal/plan"
	"github.com/ChristianBello1/hosting/internal/services"
	"github.com/ChristianBello1/hosting/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	handlers.DevMode = cfg.AppEnv == "development"

	// Ensure the base directory for client site files exists
	if err := os.MkdirAll(cfg.SitesDataBase, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create base sites directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	catalog := plan.DefaultCatalog()
	adminService := services.NewAdminService(db)
	clientService := services.NewClientService(db, catalog, cfg.SitesDataBase)
	alertService := services.NewAlertService(db)
	fileService := services.NewFileService(cfg.SitesDataBase)

	synthesizer := monitoring.NewSynthesizer(catalog)
	evaluator := monitoring.NewEvaluator(catalog)
	monitorService := monitoring.NewService(synthesizer, evaluator, alertService, hub)

	// Optionally run the background monitoring sweep
	var sweeper *monitoring.Sweeper
	if cfg.SweepSchedule != "" {
		sweeper, err = monitoring.NewSweeper(monitorService, clientService, cfg.SweepSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up monitoring sweeper")
		}
		go sweeper.Run()
	}

	// Set up router
	router := api.NewRouter(hub, cfg.CORSOrigin, adminService, clientService, alertService, fileService, monitorService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if sweeper != nil {
		sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
