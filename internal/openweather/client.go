// Package openweather talks to the OpenWeatherMap current-conditions,
// 5-day/3-hour forecast and direct geocoding endpoints.
package openweather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/upstream"
)

// DefaultBaseURL is the public OpenWeatherMap API root.
const DefaultBaseURL = "https://api.openweathermap.org"

// Provider names this source in errors and logs.
const Provider = "openweathermap"

// SearchLimit is the maximum number of geocoding candidates requested.
const SearchLimit = 5

// WeatherClient fetches current conditions and the 3-hourly forecast
type WeatherClient interface {
	// CurrentWeather retrieves the "now" snapshot for a coordinate
	CurrentWeather(ctx context.Context, coord models.Coordinate, apiKey string) (*models.CurrentWeather, error)

	// Forecast retrieves the 5-day/3-hour forecast list for a coordinate
	Forecast(ctx context.Context, coord models.Coordinate, apiKey string) (*models.Forecast, error)
}

// GeocodingClient resolves free text to candidate cities
type GeocodingClient interface {
	// SearchCities returns up to SearchLimit candidates for query
	SearchCities(ctx context.Context, query, apiKey string) ([]models.City, error)
}

// Client implements WeatherClient and GeocodingClient
type Client struct {
	http *upstream.Client
}

// NewClient creates a client rooted at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, timeout time.Duration, opts ...upstream.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: upstream.NewClient(Provider, baseURL, timeout, opts...)}
}

// IconURL returns the 2x PNG for a condition icon code.
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}

func pointQuery(coord models.Coordinate, apiKey string) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	q.Set("appid", apiKey)
	q.Set("units", "metric")
	return q
}
