package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/i474232898/forecast-normalizer/internal/api/http"
	"github.com/i474232898/forecast-normalizer/internal/config"
	"github.com/i474232898/forecast-normalizer/internal/geocode"
	"github.com/i474232898/forecast-normalizer/internal/logging"
	"github.com/i474232898/forecast-normalizer/internal/scheduler"
	"github.com/i474232898/forecast-normalizer/internal/weather"
	"github.com/i474232898/forecast-normalizer/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// NWS fetcher with resilience (backoff + circuit breaker).
	fetcher := providers.NewNWSClient(httpClient, providers.NWSOptions{
		UserAgent: cfg.NWSUserAgent,
		Backoff: providers.BackoffConfig{
			MaxRetries:      cfg.FetchMaxRetries,
			InitialInterval: cfg.FetchBackoffInitial,
			MaxInterval:     cfg.FetchBackoffMax,
		},
	}, zl.Named("nws"))

	service := weather.NewService(weather.Config{
		BaseURL:                  cfg.NWSBaseURL,
		PrecipitationProbability: cfg.PrecipitationProbability,
	}, fetcher, zl.Named("engine"))

	var geo geocode.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geo = geocode.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	} else {
		zl.Info("GEOCODER_API_KEY not set; address lookup disabled")
	}

	// Probe that periodically exercises the upstream.
	sched := scheduler.New(cfg.ProbeLocation, cfg.ProbeInterval, service, zl.Named("probe"))
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "forecast-normalizer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2*cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} | ${path}\n",
	}))
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Forecaster: service,
		Geocoder:   geo,
		Probe:      sched,
	})

	// Start server with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("listening", zap.String("port", cfg.Port))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("server stopped", zap.Error(err))
	}
}
