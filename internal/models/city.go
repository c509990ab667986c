package models

import "strings"

// City is a geocoding candidate returned by a city search.
type City struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"` // optional administrative region
}

// Coordinate returns the city's position.
func (c City) Coordinate() Coordinate {
	return Coordinate{Lat: c.Lat, Lon: c.Lon}
}

// Label renders "Name, State, Country", skipping empty parts.
func (c City) Label() string {
	parts := []string{c.Name}
	if c.State != "" {
		parts = append(parts, c.State)
	}
	if c.Country != "" {
		parts = append(parts, c.Country)
	}
	return strings.Join(parts, ", ")
}
