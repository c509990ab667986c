package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/openweather"
	"github.com/ngmaloney/mariner-console/internal/stormglass"
)

var (
	// ErrMissingCredentials gates a panel whose provider key is not set.
	ErrMissingCredentials = errors.New("api key required")

	// ErrInvalidCoordinate is returned for coordinates outside the globe.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrForecastUnavailable accompanies a report that has current conditions
	// but no forecast.
	ErrForecastUnavailable = errors.New("forecast unavailable")
)

// Service fetches weather and marine data through the cache.
type Service struct {
	weather openweather.WeatherClient
	marine  stormglass.MarineClient
	cache   *Cache
	group   singleflight.Group
	log     *slog.Logger
	now     func() time.Time
}

// NewService wires the provider clients to cache. A nil logger discards output.
func NewService(weather openweather.WeatherClient, marine stormglass.MarineClient, cache *Cache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		weather: weather,
		marine:  marine,
		cache:   cache,
		log:     log,
		now:     time.Now,
	}
}

// Focus tells the service the dashboard moved to coord; cached data for other
// places is dropped.
func (s *Service) Focus(coord models.Coordinate) {
	s.cache.Retain(coord)
}

// Invalidate drops every cached response, for example after the API keys
// change.
func (s *Service) Invalidate() {
	s.cache.Flush()
}

// flightKey identifies an in-flight provider call. Calls made with
// different API keys never share a result.
func flightKey(kind string, coord models.Coordinate, apiKey string) string {
	return fmt.Sprintf("%s:%v,%v:%s", kind, coord.Lat, coord.Lon, apiKey)
}

// Weather returns current conditions and the forecast for coord. If the
// forecast call fails after current conditions succeeded, the partial report
// is returned together with an error wrapping ErrForecastUnavailable. Only
// complete reports are cached.
func (s *Service) Weather(ctx context.Context, coord models.Coordinate, apiKey string) (*models.WeatherReport, error) {
	if apiKey == "" {
		return nil, ErrMissingCredentials
	}
	if !coord.Valid() {
		return nil, ErrInvalidCoordinate
	}

	if v, ok := s.cache.Get(KindWeather, coord); ok {
		return v.(*models.WeatherReport), nil
	}

	v, err, _ := s.group.Do(flightKey("weather", coord, apiKey), func() (any, error) {
		return s.fetchWeather(context.WithoutCancel(ctx), coord, apiKey)
	})
	report, _ := v.(*models.WeatherReport)
	return report, err
}

func (s *Service) fetchWeather(ctx context.Context, coord models.Coordinate, apiKey string) (*models.WeatherReport, error) {
	current, err := s.weather.CurrentWeather(ctx, coord, apiKey)
	if err != nil {
		s.log.Warn("weather fetch failed", "provider", openweather.Provider, "coord", coord.String(), "error", err)
		return nil, err
	}

	report := &models.WeatherReport{
		Coord:     coord,
		Current:   current,
		FetchedAt: s.now(),
	}

	forecast, err := s.weather.Forecast(ctx, coord, apiKey)
	if err != nil {
		s.log.Warn("forecast fetch failed", "provider", openweather.Provider, "coord", coord.String(), "error", err)
		return report, fmt.Errorf("%w: %w", ErrForecastUnavailable, err)
	}
	report.Forecast = forecast

	s.cache.Set(KindWeather, coord, report)
	s.log.Debug("weather fetched", "coord", coord.String(), "entries", len(forecast.Entries))
	return report, nil
}

// Marine returns the hourly marine series for exactly coord.
func (s *Service) Marine(ctx context.Context, coord models.Coordinate, apiKey string) (*models.MarineData, error) {
	if apiKey == "" {
		return nil, ErrMissingCredentials
	}
	if !coord.Valid() {
		return nil, ErrInvalidCoordinate
	}

	if v, ok := s.cache.Get(KindMarine, coord); ok {
		return v.(*models.MarineData), nil
	}

	v, err, _ := s.group.Do(flightKey("marine", coord, apiKey), func() (any, error) {
		data, err := s.marine.GetMarineData(context.WithoutCancel(ctx), coord, apiKey)
		if err != nil {
			s.log.Warn("marine fetch failed", "provider", stormglass.Provider, "coord", coord.String(), "error", err)
			return nil, err
		}
		s.cache.Set(KindMarine, coord, data)
		s.log.Debug("marine fetched", "coord", coord.String(), "hours", len(data.Hours))
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.MarineData), nil
}
