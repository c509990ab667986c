// Package geolocation decides where the dashboard starts: an explicit query
// coordinate if one was given, otherwise the device position.
package geolocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/upstream"
)

// DefaultIPURL is an ip-api compatible JSON endpoint.
const DefaultIPURL = "http://ip-api.com/json/"

// ErrUnavailable means no device position could be determined.
var ErrUnavailable = errors.New("location unavailable")

// Position is a located device.
type Position struct {
	Coord   models.Coordinate
	City    string
	Country string
}

// Locator finds the current device position
type Locator interface {
	Locate(ctx context.Context) (*Position, error)
}

// IPLocator approximates the device position from its public IP address.
type IPLocator struct {
	http *upstream.Client
}

// NewIPLocator creates a locator against an ip-api style endpoint.
func NewIPLocator(endpoint string, timeout time.Duration, opts ...upstream.Option) *IPLocator {
	if endpoint == "" {
		endpoint = DefaultIPURL
	}
	return &IPLocator{http: upstream.NewClient("geoip", endpoint, timeout, opts...)}
}

// Locate returns the position reported for the caller's IP. Any failure is
// reported as ErrUnavailable.
func (l *IPLocator) Locate(ctx context.Context) (*Position, error) {
	var resp ipResponse
	if err := l.http.GetJSON(ctx, "", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Message)
	}

	coord := models.Coordinate{Lat: resp.Lat, Lon: resp.Lon}
	if !coord.Valid() {
		return nil, fmt.Errorf("%w: invalid coordinate %v", ErrUnavailable, coord)
	}

	return &Position{Coord: coord, City: resp.City, Country: resp.Country}, nil
}

type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}
