package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
	"github.com/MKhiriev/go-key-purger/internal/server"
	"github.com/MKhiriev/go-key-purger/internal/service"
	"github.com/MKhiriev/go-key-purger/internal/store"
	"github.com/MKhiriev/go-key-purger/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("key-purger")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	if err = run(cfg, log); err != nil {
		log.Error().Err(err).Msg("purge failed")
		os.Exit(1)
	}
}

func run(cfg *config.StructuredConfig, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing storages")
		}
	}()

	collector := metrics.NewCollector(nil)

	srv, err := server.NewServer(collector, cfg.Metrics, log)
	switch {
	case err == nil:
		go srv.RunServer()
		defer srv.Shutdown()
	case errors.Is(err, server.ErrNoServersAreCreated):
		log.Debug().Msg("metrics endpoint disabled")
	default:
		return fmt.Errorf("error creating metrics server: %w", err)
	}

	services := service.NewServices(storages, cfg.Purge, collector, log)

	report, err := services.PurgeService.Run(ctx, cfg.KeyPattern)
	if err != nil {
		return err
	}

	log.Info().
		Str("session_id", report.SessionID).
		Int("passes", report.Passes).
		Int("resumed", report.Resumed).
		Int("partial_scans", report.PartialScans).
		Int64("removed_count", report.Deleted).
		Dur("duration", report.Duration()).
		Msg("purge completed")

	return nil
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", valueOrNA(info.BuildVersion()))
	fmt.Printf("Build date: %s\n", valueOrNA(info.BuildDate()))
	fmt.Printf("Build commit: %s\n", valueOrNA(info.BuildCommit()))
}

func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
