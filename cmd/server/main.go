// VentureLens server entry point.
//
// Startup order:
//  1. Load configuration from environment
//  2. Initialize structured logging
//  3. Open the two sqlite databases (records.db, cache.db)
//  4. Wire repositories, clients and services
//  5. Register background jobs (record refresh, optional S3 backup)
//  6. Start the HTTP server
//  7. Wait for SIGINT/SIGTERM and shut down gracefully
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/venturelens/venturelens/internal/clientdata"
	"github.com/venturelens/venturelens/internal/clients/analysisapi"
	"github.com/venturelens/venturelens/internal/config"
	"github.com/venturelens/venturelens/internal/database"
	"github.com/venturelens/venturelens/internal/modules/analytics"
	analyticshandlers "github.com/venturelens/venturelens/internal/modules/analytics/handlers"
	"github.com/venturelens/venturelens/internal/modules/startups"
	startuphandlers "github.com/venturelens/venturelens/internal/modules/startups/handlers"
	"github.com/venturelens/venturelens/internal/reliability"
	"github.com/venturelens/venturelens/internal/scheduler"
	"github.com/venturelens/venturelens/internal/server"
	"github.com/venturelens/venturelens/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:   "info",
			DevMode: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		DevMode: cfg.DevMode,
	})

	log.Info().Msg("Starting VentureLens")

	// Databases. Records are durable; snapshots are replaceable cache.
	recordsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "records.db"),
		Profile: database.ProfileStandard,
		Name:    "records",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open records database")
	}
	defer recordsDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	// Repositories and clients.
	startupRepo := startups.NewRepository(recordsDB.Conn())
	snapshotRepo := clientdata.NewRepository(cacheDB.Conn())
	apiClient := analysisapi.NewClient(cfg.AnalysisAPIURL, log)

	// Live refresh hub doubles as the sync service's notifier.
	liveHub := server.NewLiveHub(log)

	syncService := startups.NewSyncService(apiClient, startupRepo, snapshotRepo, liveHub, log)
	analyticsService := analytics.NewService(log)

	// HTTP server.
	srv := server.New(server.Config{
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		Log:              log,
		AnalyticsHandler: analyticshandlers.NewHandler(syncService, analyticsService, log),
		StartupHandler:   startuphandlers.NewHandler(startupRepo, syncService, log),
		SystemHandlers:   server.NewSystemHandlers(cfg.DataDir, log),
		LiveHub:          liveHub,
	})

	// Background jobs.
	sched := scheduler.New(log)

	refreshJob := startups.NewRefreshJob(syncService)
	if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("Failed to schedule record refresh")
	}

	if cfg.Backup != nil && cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(context.Background(), cfg.Backup, log)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize S3 client, backups disabled")
		} else {
			backupService := reliability.NewBackupService(s3Client, cfg.DataDir, log)
			backupJob := reliability.NewBackupJob(backupService, log)
			if err := sched.AddJob(cfg.Backup.Schedule, backupJob); err != nil {
				log.Error().Err(err).Str("schedule", cfg.Backup.Schedule).Msg("Failed to schedule backups")
			}
		}
	}

	sched.Start()
	defer sched.Stop()

	// Populate the dashboard immediately instead of waiting for the
	// first scheduled refresh.
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Warn().Err(err).Msg("Initial record refresh failed")
		}
	}()

	// Start HTTP server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for interrupt signal or server failure.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("HTTP server stopped unexpectedly")
	}

	log.Info().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
