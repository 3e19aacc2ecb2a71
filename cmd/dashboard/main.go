package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/emissions-dashboard/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/emissions-dashboard/internal/adapter/kafka"
	s3adapter "github.com/couchcryptid/emissions-dashboard/internal/adapter/s3"
	"github.com/couchcryptid/emissions-dashboard/internal/config"
	"github.com/couchcryptid/emissions-dashboard/internal/dashboard"
	"github.com/couchcryptid/emissions-dashboard/internal/domain"
	"github.com/couchcryptid/emissions-dashboard/internal/loader"
	"github.com/couchcryptid/emissions-dashboard/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Select the table source (DATA_SOURCE=file|s3).
	var source loader.Source = loader.FileSource{}
	if cfg.DataSource == config.SourceS3 {
		s3src, err := s3adapter.NewSource(ctx, cfg)
		if err != nil {
			logger.Error("failed to create s3 source", "error", err, "bucket", cfg.S3Bucket)
			os.Exit(1)
		}
		source = s3src
		logger.Info("reading tables from s3", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
	}

	// Both tables must load before anything is served.
	l := loader.New(source, logger, metrics)
	session, err := l.LoadSession(ctx,
		loader.SectorSpec(cfg.SectorDataPath, cfg.HeaderRow),
		loader.FuelSpec(cfg.FuelDataPath, cfg.HeaderRow),
	)
	if err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			logger.Error("emissions data not found", "error", err,
				"sector_data", cfg.SectorDataPath, "fuel_data", cfg.FuelDataPath)
		} else {
			logger.Error("failed to load emissions data", "error", err)
		}
		os.Exit(1)
	}

	// Render sink (feature-flagged via KAFKA_ENABLED).
	var sink dashboard.FrameSink
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		logger.Info("frame publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaRenderTopic)
	} else {
		logger.Info("frame publishing disabled")
	}

	d := dashboard.New(session, domain.NewBernoulliRiskModel(), sink, logger, metrics, cfg.MinIncome)
	srv := httpadapter.NewServer(cfg.HTTPAddr, d, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
