// Command mariner-api serves the dashboard's weather and marine data as JSON.
//
// Provider keys come from OPENWEATHER_API_KEY and STORMGLASS_API_KEY. Requests
// for a provider without a key are answered with api_key_required.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ngmaloney/mariner-console/internal/api"
	"github.com/ngmaloney/mariner-console/internal/config"
	"github.com/ngmaloney/mariner-console/internal/dashboard"
	"github.com/ngmaloney/mariner-console/internal/logging"
	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/openweather"
	"github.com/ngmaloney/mariner-console/internal/stormglass"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.NewJSON(os.Stdout, "mariner-api", cfg.LogLevel)
	logger.Info("mariner API starting",
		"environment", cfg.Environment,
		"addr", cfg.Server.Addr,
		"openweathermap_key", cfg.Providers.OpenWeatherKey != "",
		"stormglass_key", cfg.Providers.StormGlassKey != "",
	)

	weather := openweather.NewClient(cfg.Providers.OpenWeatherURL, cfg.Providers.HTTPTimeout)
	marineClient := stormglass.NewClient(cfg.Providers.StormGlassURL, cfg.Providers.HTTPTimeout)
	svc := dashboard.NewService(weather, marineClient, dashboard.NewCache(cfg.Providers.CacheTTL), logger)

	srv := api.NewServer(api.Options{
		Service:  svc,
		Geocoder: weather,
		Credentials: models.Credentials{
			OpenWeatherMap: cfg.Providers.OpenWeatherKey,
			StormGlass:     cfg.Providers.StormGlassKey,
		},
		MarineSource: cfg.Providers.MarineSource,
		Logger:       logger,
	})

	return serve(srv.Handler(), cfg.Server, logger)
}

// serve runs the listener until SIGINT or SIGTERM, then drains in-flight requests.
func serve(handler http.Handler, cfg config.ServerConfig, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}
