package models

import (
	"fmt"
	"math"
)

// WeatherTolerance is how far apart (in degrees, per axis) two coordinates may be
// and still be treated as the same place for current weather.
const WeatherTolerance = 0.01

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate lies within the geographic range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Equal reports exact equality of both axes.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Lat == o.Lat && c.Lon == o.Lon
}

// Within reports whether both axes differ by less than tolerance.
// A tolerance of zero or less falls back to exact equality.
func (c Coordinate) Within(o Coordinate, tolerance float64) bool {
	if tolerance <= 0 {
		return c.Equal(o)
	}
	return math.Abs(c.Lat-o.Lat) < tolerance && math.Abs(c.Lon-o.Lon) < tolerance
}

// Key returns a stable string form rounded to the given number of decimals.
func (c Coordinate) Key(decimals int) string {
	return fmt.Sprintf("%.*f,%.*f", decimals, c.Lat, decimals, c.Lon)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lon)
}
