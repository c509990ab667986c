package openweather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// SearchCities resolves free text to up to SearchLimit candidate cities.
// An empty query or key returns no candidates without a network call.
func (c *Client) SearchCities(ctx context.Context, query, apiKey string) ([]models.City, error) {
	query = strings.TrimSpace(query)
	if query == "" || apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(SearchLimit))
	params.Set("appid", apiKey)

	var results []geocodeResponse
	if err := c.http.GetJSON(ctx, "/geo/1.0/direct", params, nil, &results); err != nil {
		return nil, fmt.Errorf("failed to search cities: %w", err)
	}

	cities := make([]models.City, 0, len(results))
	for _, r := range results {
		cities = append(cities, models.City{
			Name:    r.Name,
			Lat:     r.Lat,
			Lon:     r.Lon,
			Country: r.Country,
			State:   r.State,
		})
	}
	return cities, nil
}

// geocodeResponse is one entry of the direct geocoding array
type geocodeResponse struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}
