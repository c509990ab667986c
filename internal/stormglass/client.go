// Package stormglass fetches hourly marine point data from the Storm Glass API.
package stormglass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/upstream"
)

// DefaultBaseURL is the public Storm Glass API root.
const DefaultBaseURL = "https://api.stormglass.io"

// Provider names this source in errors and logs.
const Provider = "stormglass"

// Params is the fixed set of hourly parameters requested for every point.
var Params = []string{
	"waterTemperature", "wavePeriod", "waveDirection", "waveHeight",
	"windWaveDirection", "windWaveHeight", "windWavePeriod",
	"swellPeriod", "secondarySwellPeriod", "swellDirection", "secondarySwellDirection",
	"swellHeight", "secondarySwellHeight",
	"windSpeed", "windSpeed20m", "windSpeed30m", "windSpeed40m", "windSpeed50m",
	"windSpeed80m", "windSpeed100m", "windSpeed1000hpa", "windSpeed800hpa",
	"windSpeed500hpa", "windSpeed200hpa",
	"windDirection", "windDirection20m", "windDirection30m", "windDirection40m",
	"windDirection50m", "windDirection80m", "windDirection100m", "windDirection1000hpa",
	"windDirection800hpa", "windDirection500hpa", "windDirection200hpa",
	"airTemperature", "airTemperature80m", "airTemperature100m", "airTemperature1000hpa",
	"airTemperature800hpa", "airTemperature500hpa", "airTemperature200hpa",
	"precipitation", "gust", "cloudCover", "humidity", "pressure", "visibility",
	"currentSpeed", "currentDirection", "iceCover", "snowDepth", "seaLevel",
	"snowAlbedo", "seaIceThickness", "dewPointTemperature",
}

// MarineClient fetches the hourly marine series for a point
type MarineClient interface {
	GetMarineData(ctx context.Context, coord models.Coordinate, apiKey string) (*models.MarineData, error)
}

// Client implements MarineClient
type Client struct {
	http *upstream.Client
	now  func() time.Time
}

// NewClient creates a client rooted at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, timeout time.Duration, opts ...upstream.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: upstream.NewClient(Provider, baseURL, timeout, opts...),
		now:  time.Now,
	}
}

// GetMarineData requests every parameter in Params for coord. The API key is
// sent as the raw Authorization header value. The result is stamped with the
// requested coordinate, not the one echoed back by the provider.
func (c *Client) GetMarineData(ctx context.Context, coord models.Coordinate, apiKey string) (*models.MarineData, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	query.Set("params", strings.Join(Params, ","))

	header := http.Header{}
	header.Set("Authorization", apiKey)

	var resp pointResponse
	if err := c.http.GetJSON(ctx, "/v2/weather/point", query, header, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch marine data: %w", err)
	}

	hours := make([]models.MarineHour, 0, len(resp.Hours))
	for i, raw := range resp.Hours {
		hour, err := decodeHour(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode hour %d: %w", i, err)
		}
		hours = append(hours, hour)
	}

	return &models.MarineData{
		Hours: hours,
		Quota: models.MarineQuota{
			Cost:         resp.Meta.Cost,
			DailyQuota:   resp.Meta.DailyQuota,
			RequestCount: resp.Meta.RequestCount,
		},
		Stamp:     coord,
		FetchedAt: c.now(),
	}, nil
}

// decodeHour splits one hourly object into its timestamp and per-source values.
// Null values are dropped so they read as missing.
func decodeHour(raw map[string]json.RawMessage) (models.MarineHour, error) {
	hour := models.MarineHour{Values: make(map[string]map[string]float64, len(raw))}

	for name, msg := range raw {
		if name == "time" {
			var ts string
			if err := json.Unmarshal(msg, &ts); err != nil {
				return hour, fmt.Errorf("time: %w", err)
			}
			t, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return hour, fmt.Errorf("time: %w", err)
			}
			hour.Time = t
			continue
		}

		var sources map[string]*float64
		if err := json.Unmarshal(msg, &sources); err != nil {
			// Unknown non-object fields are not parameters.
			continue
		}
		values := make(map[string]float64, len(sources))
		for src, v := range sources {
			if v != nil {
				values[src] = *v
			}
		}
		if len(values) > 0 {
			hour.Values[name] = values
		}
	}

	return hour, nil
}

// Storm Glass API response structures

type pointResponse struct {
	Hours []map[string]json.RawMessage `json:"hours"`
	Meta  struct {
		Cost         int     `json:"cost"`
		DailyQuota   int     `json:"dailyQuota"`
		RequestCount int     `json:"requestCount"`
		Lat          float64 `json:"lat"`
		Lng          float64 `json:"lng"`
	} `json:"meta"`
}
