package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"call-metrics-service/internal/config"
	"call-metrics-service/internal/controller"
	"call-metrics-service/internal/db"
	httpserver "call-metrics-service/internal/http"
	"call-metrics-service/internal/logger"
	"call-metrics-service/internal/service"
	"call-metrics-service/internal/source"
	"call-metrics-service/internal/store"
	"call-metrics-service/internal/telemetry"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry.Init(log.Entry)

	src, cleanup, err := buildSource(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("build source")
	}
	if cleanup != nil {
		defer cleanup()
	}

	snapshots := store.NewSnapshotStore()
	dashboardService := service.NewDashboardService(src, snapshots, cfg.AvgVisitValue, cfg.MonthlyFee, log.Entry)
	worker := service.NewRefreshWorker(dashboardService, cfg.RefreshInterval, cfg.RefreshTimeout, log.Entry)
	dashboardController := controller.NewDashboardController(dashboardService)

	server := httpserver.NewServer(cfg, dashboardController, log)

	go func() {
		log.WithField("addr", cfg.HTTPPort).Info("starting server")
		if err := server.Listen(cfg.HTTPPort); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	worker.Shutdown()
	if err := server.Shutdown(); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}

// buildSource constructs the configured row source, optionally wrapped
// with a local CSV fallback.
func buildSource(ctx context.Context, cfg *config.Config, log *logger.Logger) (source.RowSource, func(), error) {
	var (
		src     source.RowSource
		cleanup func()
	)

	switch cfg.SourceDriver {
	case config.DriverClickHouse:
		conn, err := db.NewConn(ctx, cfg.DatabaseURL, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, conn, cfg.SourceTable); err != nil {
			conn.Close()
			return nil, nil, err
		}
		src = source.NewClickHouseSource(conn, cfg.SourceTable)
		cleanup = func() { conn.Close() }
	case config.DriverSpreadsheet:
		src = source.NewSpreadsheetSource(cfg.SpreadsheetPath, cfg.SpreadsheetTab)
	case config.DriverRemoteCSV:
		src = source.NewRemoteCSVSource(cfg.RemoteCSVURL, cfg.RemoteTimeout)
	default:
		src = source.NewCSVFileSource(cfg.CSVPath)
	}

	if cfg.FallbackCSVPath != "" {
		src = source.NewFallbackSource(src, source.NewCSVFileSource(cfg.FallbackCSVPath), log.Entry)
	}

	return src, cleanup, nil
}
