package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/mariner-console/internal/dashboard"
	"github.com/ngmaloney/mariner-console/internal/geolocation"
	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/openweather"
)

// Message types for async operations

// locationResolvedMsg carries the one-time start-up resolution
type locationResolvedMsg struct {
	resolution geolocation.Resolution
}

// weatherFetchedMsg is sent when a weather fetch completes. ticket identifies
// the request so superseded results can be dropped.
type weatherFetchedMsg struct {
	ticket uint64
	coord  models.Coordinate
	report *models.WeatherReport
	err    error
}

// marineFetchedMsg is sent when a marine fetch completes
type marineFetchedMsg struct {
	ticket uint64
	coord  models.Coordinate
	data   *models.MarineData
	err    error
}

// searchTickMsg fires when the search box has been quiet for the debounce period
type searchTickMsg struct {
	seq   int
	query string
}

// citiesFoundMsg is sent when a city lookup completes
type citiesFoundMsg struct {
	seq    int
	cities []models.City
	err    error
}

// credentialsSavedMsg is sent after the settings form is persisted
type credentialsSavedMsg struct {
	creds models.Credentials
	err   error
}

// toastExpiredMsg removes a toast after its display period
type toastExpiredMsg struct {
	id int
}

// tickFunc matches tea.Tick so tests can fire timers immediately.
type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// resolveLocation runs start-up location resolution in the background
func resolveLocation(resolver *geolocation.Resolver, query *models.Coordinate) tea.Cmd {
	return func() tea.Msg {
		return locationResolvedMsg{resolution: resolver.Resolve(context.Background(), query)}
	}
}

// fetchWeather fetches current conditions and the forecast
func fetchWeather(svc *dashboard.Service, ticket uint64, coord models.Coordinate, apiKey string) tea.Cmd {
	return func() tea.Msg {
		report, err := svc.Weather(context.Background(), coord, apiKey)
		return weatherFetchedMsg{ticket: ticket, coord: coord, report: report, err: err}
	}
}

// fetchMarine fetches the hourly marine series
func fetchMarine(svc *dashboard.Service, ticket uint64, coord models.Coordinate, apiKey string) tea.Cmd {
	return func() tea.Msg {
		data, err := svc.Marine(context.Background(), coord, apiKey)
		return marineFetchedMsg{ticket: ticket, coord: coord, data: data, err: err}
	}
}

// searchCities looks up candidate cities for query
func searchCities(geocoder openweather.GeocodingClient, seq int, query, apiKey string) tea.Cmd {
	return func() tea.Msg {
		cities, err := geocoder.SearchCities(context.Background(), query, apiKey)
		return citiesFoundMsg{seq: seq, cities: cities, err: err}
	}
}

// saveCredentials persists the settings form
func saveCredentials(store CredentialStore, creds models.Credentials) tea.Cmd {
	return func() tea.Msg {
		return credentialsSavedMsg{creds: creds, err: store.Save(creds)}
	}
}
