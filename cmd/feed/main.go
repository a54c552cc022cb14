package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/dial112-incident-feed/internal/adapter/backend"
	httpadapter "github.com/couchcryptid/dial112-incident-feed/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/dial112-incident-feed/internal/adapter/kafka"
	"github.com/couchcryptid/dial112-incident-feed/internal/adapter/mapbox"
	"github.com/couchcryptid/dial112-incident-feed/internal/config"
	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
	"github.com/couchcryptid/dial112-incident-feed/internal/feed"
	"github.com/couchcryptid/dial112-incident-feed/internal/observability"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout, "region", cfg.GeocodeRegion)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Kafka publishing is optional; a nil publisher keeps snapshots local.
	var publisher feed.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	source := backend.NewClient(cfg.IncidentAPIURL, cfg.FetchTimeout, logger)
	f := feed.New(source, publisher, geocoder, logger, metrics, feed.Options{
		FallbackEnabled: cfg.FallbackEnabled,
		PollInterval:    cfg.PollInterval,
		GeocodeRegion:   cfg.GeocodeRegion,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, f, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("incident feed starting", "backend", source.URL(), "poll_interval", cfg.PollInterval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return f.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	exitCode := 0
	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
		exitCode = 1
	}

	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	os.Exit(exitCode)
}
