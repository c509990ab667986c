package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/mariner-console/internal/config"
	"github.com/ngmaloney/mariner-console/internal/dashboard"
	"github.com/ngmaloney/mariner-console/internal/geolocation"
	"github.com/ngmaloney/mariner-console/internal/logging"
	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/nav"
	"github.com/ngmaloney/mariner-console/internal/openweather"
	"github.com/ngmaloney/mariner-console/internal/settings"
	"github.com/ngmaloney/mariner-console/internal/stormglass"
	"github.com/ngmaloney/mariner-console/internal/ui"
)

func main() {
	lat := flag.String("lat", "", "Latitude to open the dashboard at (requires --lon)")
	lon := flag.String("lon", "", "Longitude to open the dashboard at (requires --lat)")
	flag.Parse()

	if err := run(*lat, *lon); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

func run(lat, lon string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	log, closer, err := logging.NewFile(cfg.LogFile, "mariner-console", cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	// An unparseable or partial pair is ignored and the device location is used.
	var query *models.Coordinate
	if lat != "" || lon != "" {
		if c, ok := nav.ParseCoordinate(url.Values{"lat": {lat}, "lon": {lon}}); ok {
			query = &c
		} else {
			log.Warn("ignoring invalid coordinate flags", "lat", lat, "lon", lon)
		}
	}

	store := settings.NewStore(cfg.DBPath)
	creds, err := store.Seed(models.Credentials{
		OpenWeatherMap: cfg.Providers.OpenWeatherKey,
		StormGlass:     cfg.Providers.StormGlassKey,
	})
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	weather := openweather.NewClient(cfg.Providers.OpenWeatherURL, cfg.Providers.HTTPTimeout)
	marineClient := stormglass.NewClient(cfg.Providers.StormGlassURL, cfg.Providers.HTTPTimeout)
	svc := dashboard.NewService(weather, marineClient, dashboard.NewCache(cfg.Providers.CacheTTL), log)
	resolver := geolocation.NewResolver(geolocation.NewIPLocator(cfg.Providers.GeoIPURL, cfg.Providers.HTTPTimeout))

	log.Info("mariner console starting",
		"environment", cfg.Environment,
		"marine_source", cfg.Providers.MarineSource,
		"has_query", query != nil,
	)

	model := ui.NewModel(ui.Options{
		Service:      svc,
		Geocoder:     weather,
		Resolver:     resolver,
		Store:        store,
		Credentials:  creds,
		Query:        query,
		Debounce:     cfg.Providers.SearchDebounce,
		MarineSource: cfg.Providers.MarineSource,
		Logger:       log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	log.Info("mariner console stopped")
	return nil
}
