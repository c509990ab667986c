package models

import (
	"math"
	"time"
)

// Condition is one weather condition as reported by the provider
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`        // e.g., "Rain", "Clouds"
	Description string `json:"description"` // e.g., "light rain"
	Icon        string `json:"icon"`        // provider icon code, e.g., "10d"
}

// CurrentWeather is the provider's snapshot for "now" at a location
type CurrentWeather struct {
	Name       string      `json:"name"`
	Country    string      `json:"country"`
	Coord      Coordinate  `json:"coord"`
	Temp       float64     `json:"temp"` // Celsius
	FeelsLike  float64     `json:"feels_like"`
	TempMin    float64     `json:"temp_min"`
	TempMax    float64     `json:"temp_max"`
	Humidity   int         `json:"humidity"` // percent
	Pressure   int         `json:"pressure"` // hPa
	WindSpeed  float64     `json:"wind_speed"` // m/s
	WindDeg    float64     `json:"wind_deg"`
	Conditions []Condition `json:"conditions"`
	Sunrise    time.Time   `json:"sunrise"`
	Sunset     time.Time   `json:"sunset"`
	Observed   time.Time   `json:"observed"`
}

// Primary returns the first reported condition, or a zero Condition.
func (c *CurrentWeather) Primary() Condition {
	if len(c.Conditions) == 0 {
		return Condition{}
	}
	return c.Conditions[0]
}

// WindKmh converts the wind speed to whole km/h.
func (c *CurrentWeather) WindKmh() int {
	return Round(c.WindSpeed * 3.6)
}

// ForecastEntry is a single 3-hour forecast step
type ForecastEntry struct {
	Time       time.Time   `json:"time"`
	Temp       float64     `json:"temp"`
	TempMin    float64     `json:"temp_min"`
	TempMax    float64     `json:"temp_max"`
	Humidity   int         `json:"humidity"`
	WindSpeed  float64     `json:"wind_speed"`
	Conditions []Condition `json:"conditions"`
}

// Primary returns the first reported condition, or a zero Condition.
func (e ForecastEntry) Primary() Condition {
	if len(e.Conditions) == 0 {
		return Condition{}
	}
	return e.Conditions[0]
}

// Forecast is the ordered 5-day/3-hour forecast list
type Forecast struct {
	City    string          `json:"city"`
	Country string          `json:"country"`
	Coord   Coordinate      `json:"coord"`
	Entries []ForecastEntry `json:"entries"` // ordered by time
}

// WeatherReport pairs current conditions with the forecast fetched for the same coordinate.
// Forecast may be nil when only the current snapshot could be retrieved.
type WeatherReport struct {
	Coord     Coordinate      `json:"coord"`
	Current   *CurrentWeather `json:"current"`
	Forecast  *Forecast       `json:"forecast,omitempty"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}
