package app

import (
	"context"
	"countrycache/internal/platform/db"
	httpserver "countrycache/internal/platform/http"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"countrycache/internal/adapters/cache"
	"countrycache/internal/adapters/httpclient"
	"countrycache/internal/adapters/postgres"
	"countrycache/internal/api"
	"countrycache/internal/config"
	"countrycache/internal/country"
	"countrycache/internal/country/handler"
	"countrycache/internal/summary"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and optional scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Schema migrations applied")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	countryClient := httpclient.NewCountryClient(baseHTTPClient, appCfg.Sources.CountriesURL)
	rateClient := httpclient.NewExchangeRateClient(baseHTTPClient, appCfg.Sources.ExchangeRatesURL)
	flagClient := httpclient.NewFlagClient(baseHTTPClient, appCfg.Sources.FlagTimeout())

	flagCache, err := cache.NewFlagCache(appCfg.FlagCache.MaxItems)
	if err != nil {
		logrus.WithError(err).Error("Failed to create flag cache")
		return err
	}
	defer flagCache.Close()

	renderer, err := summary.NewRenderer(flagClient, flagCache, appCfg.Summary.OutputDir)
	if err != nil {
		logrus.WithError(err).Error("Failed to create summary renderer")
		return err
	}

	// Repositories and services
	countryRepo := postgres.NewCountryRepository(pool)
	countryService := country.NewService(countryRepo, countryClient, rateClient, renderer, country.Settings{
		FetchTimeout: appCfg.Sources.FetchTimeout(),
		TopN:         appCfg.Summary.TopN,
	})
	// Background summaries must finish before the pool closes
	defer countryService.WaitSummaries()

	if appCfg.Scheduler.Enabled {
		scheduler := country.NewScheduler(countryService, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	countryHandler := handler.NewCountryHandler(countryService)
	router := api.NewRouter(countryHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
