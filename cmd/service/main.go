// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/handlers"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/middleware"
	"github.com/jsamuelsen/localized-problems/internal/adapters/storage/memory"
	"github.com/jsamuelsen/localized-problems/internal/adapters/storage/postgres"
	"github.com/jsamuelsen/localized-problems/internal/app"
	"github.com/jsamuelsen/localized-problems/internal/domain"
	"github.com/jsamuelsen/localized-problems/internal/platform/config"
	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
	"github.com/jsamuelsen/localized-problems/internal/platform/logging"
	"github.com/jsamuelsen/localized-problems/internal/platform/telemetry"
	"github.com/jsamuelsen/localized-problems/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	routerCfg, err := newRouterConfig(cfg, logger)
	if err != nil {
		return err
	}

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), routerCfg)

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newRouterConfig loads the catalog and builds the stores, services and
// handlers.
func newRouterConfig(cfg *config.Config, logger *slog.Logger) (http.RouterConfig, error) {
	defaultCulture, err := i18n.ParseCulture(cfg.I18n.DefaultCulture)
	if err != nil {
		return http.RouterConfig{}, fmt.Errorf("parsing default culture: %w", err)
	}

	cultures := make([]i18n.Culture, 0, len(cfg.I18n.SupportedCultures))
	for _, s := range cfg.I18n.SupportedCultures {
		culture, err := i18n.ParseCulture(s)
		if err != nil {
			return http.RouterConfig{}, fmt.Errorf("parsing supported culture: %w", err)
		}

		cultures = append(cultures, culture)
	}

	negotiator, err := i18n.NewNegotiator(defaultCulture, cultures...)
	if err != nil {
		return http.RouterConfig{}, fmt.Errorf("creating culture negotiator: %w", err)
	}

	catalog, err := i18n.Load(cfg.I18n.LocalesDir, cultures...)
	if err != nil {
		return http.RouterConfig{}, fmt.Errorf("loading translations: %w", err)
	}

	healthRegistry := ports.NewHealthRegistry()
	for _, check := range catalogChecks(catalog, cultures) {
		if err := healthRegistry.Register(check); err != nil {
			return http.RouterConfig{}, fmt.Errorf("registering catalog health check: %w", err)
		}
	}

	forecastStore, err := postgres.NewForecastStore(cfg.Forecast.DSN, cfg.Forecast.ConnectTimeout)
	if err != nil {
		return http.RouterConfig{}, fmt.Errorf("creating forecast store: %w", err)
	}

	tr := middleware.NewTranslations(catalog,
		i18n.WithLogger(logger),
		i18n.WithFallbackCulture(defaultCulture),
	)

	cityService := app.NewCityService(app.CityServiceConfig{
		Directory: memory.NewCityDirectory(),
		Logger:    logger,
	})
	forecastService := app.NewForecastService(app.ForecastServiceConfig{
		Store:  forecastStore,
		Logger: logger,
	})

	return http.RouterConfig{
		ServiceName:            cfg.Telemetry.ServiceName,
		Compression:            cfg.Server.Compression,
		RequestTimeout:         cfg.Server.RequestTimeout,
		CORS:                   cfg.CORS,
		Negotiator:             negotiator,
		ApplyToResponseHeaders: cfg.I18n.ApplyToResponseHeaders,
		Translations:           tr,
		BusinessTypeBase:       cfg.Problems.BusinessTypeBase,
		HealthHandler:          handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		CityHandler:            handlers.NewCityHandler(cityService, tr),
		ForecastHandler:        handlers.NewForecastHandler(forecastService),
	}, nil
}

// catalogChecks returns one completeness check per bundle, requiring every
// key the service resolves.
func catalogChecks(catalog *i18n.Catalog, cultures []i18n.Culture) []ports.HealthChecker {
	return []ports.HealthChecker{
		i18n.NewCompletenessCheck(catalog, i18n.BundleBusiness, cultures, domain.CodeNames()...),
		i18n.NewCompletenessCheck(catalog, i18n.BundleValidation, cultures,
			handlers.RuleMandatoryField, handlers.RuleFieldNotLongEnough, handlers.RuleFieldTooLong, dto.RuleKeyInvalidBody,
		),
		i18n.NewCompletenessCheck(catalog, i18n.BundleProblems, cultures,
			middleware.TitleValidation, middleware.TitleNotFound, middleware.TitleMethodNotAllowed,
		),
	}
}

// waitForShutdown blocks until a shutdown signal is received or the server
// fails, then drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
