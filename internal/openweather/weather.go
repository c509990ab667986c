package openweather

import (
	"context"
	"fmt"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// CurrentWeather retrieves current conditions in metric units
func (c *Client) CurrentWeather(ctx context.Context, coord models.Coordinate, apiKey string) (*models.CurrentWeather, error) {
	var resp currentResponse
	if err := c.http.GetJSON(ctx, "/data/2.5/weather", pointQuery(coord, apiKey), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	current := &models.CurrentWeather{
		Name:       resp.Name,
		Country:    resp.Sys.Country,
		Coord:      models.Coordinate{Lat: resp.Coord.Lat, Lon: resp.Coord.Lon},
		Temp:       resp.Main.Temp,
		FeelsLike:  resp.Main.FeelsLike,
		TempMin:    resp.Main.TempMin,
		TempMax:    resp.Main.TempMax,
		Humidity:   resp.Main.Humidity,
		Pressure:   resp.Main.Pressure,
		WindSpeed:  resp.Wind.Speed,
		WindDeg:    resp.Wind.Deg,
		Conditions: convertConditions(resp.Weather),
		Observed:   unixTime(resp.Dt),
		Sunrise:    unixTime(resp.Sys.Sunrise),
		Sunset:     unixTime(resp.Sys.Sunset),
	}

	return current, nil
}

// Forecast retrieves the 5-day/3-hour forecast in metric units
func (c *Client) Forecast(ctx context.Context, coord models.Coordinate, apiKey string) (*models.Forecast, error) {
	var resp forecastResponse
	if err := c.http.GetJSON(ctx, "/data/2.5/forecast", pointQuery(coord, apiKey), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	forecast := &models.Forecast{
		City:    resp.City.Name,
		Country: resp.City.Country,
		Coord:   models.Coordinate{Lat: resp.City.Coord.Lat, Lon: resp.City.Coord.Lon},
		Entries: make([]models.ForecastEntry, 0, len(resp.List)),
	}

	for _, item := range resp.List {
		forecast.Entries = append(forecast.Entries, models.ForecastEntry{
			Time:       unixTime(item.Dt),
			Temp:       item.Main.Temp,
			TempMin:    item.Main.TempMin,
			TempMax:    item.Main.TempMax,
			Humidity:   item.Main.Humidity,
			WindSpeed:  item.Wind.Speed,
			Conditions: convertConditions(item.Weather),
		})
	}

	return forecast, nil
}

func convertConditions(in []conditionResponse) []models.Condition {
	out := make([]models.Condition, 0, len(in))
	for _, w := range in {
		out = append(out, models.Condition{
			ID:          w.ID,
			Main:        w.Main,
			Description: w.Description,
			Icon:        w.Icon,
		})
	}
	return out
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// OpenWeatherMap API response structures

type coordResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type conditionResponse struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainResponse struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type windResponse struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type currentResponse struct {
	Coord   coordResponse       `json:"coord"`
	Weather []conditionResponse `json:"weather"`
	Main    mainResponse        `json:"main"`
	Wind    windResponse        `json:"wind"`
	Dt      int64               `json:"dt"`
	Sys     struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

type forecastResponse struct {
	List []struct {
		Dt      int64               `json:"dt"`
		Main    mainResponse        `json:"main"`
		Weather []conditionResponse `json:"weather"`
		Wind    windResponse        `json:"wind"`
	} `json:"list"`
	City struct {
		Name    string        `json:"name"`
		Country string        `json:"country"`
		Coord   coordResponse `json:"coord"`
	} `json:"city"`
}
