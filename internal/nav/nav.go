// Package nav holds the navigable location state: the lat/lon query pair that
// can be shared, passed on the command line, or replaced by a city selection.
package nav

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// ParseCoordinate reads lat and lon from values. Both must be present, numeric
// and in range.
func ParseCoordinate(values url.Values) (models.Coordinate, bool) {
	latStr := strings.TrimSpace(values.Get("lat"))
	lonStr := strings.TrimSpace(values.Get("lon"))
	if latStr == "" || lonStr == "" {
		return models.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return models.Coordinate{}, false
	}

	c := models.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return models.Coordinate{}, false
	}
	return c, true
}

// ParseQuery parses a raw "lat=..&lon=.." string, with or without a leading '?'.
func ParseQuery(raw string) (models.Coordinate, bool) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return models.Coordinate{}, false
	}
	return ParseCoordinate(values)
}

// Values encodes c as lat/lon query values.
func Values(c models.Coordinate) url.Values {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	v.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	return v
}

// Share renders c as a shareable query string.
func Share(c models.Coordinate) string {
	return "?" + Values(c).Encode()
}

// Changed reports whether next differs from the current location. A nil
// current location always counts as a change.
func Changed(current *models.Coordinate, next models.Coordinate) bool {
	if current == nil {
		return true
	}
	return !current.Equal(next)
}

// Location is the current navigable state. Replace swaps the coordinate in
// place; there is no history to go back to.
type Location struct {
	coord *models.Coordinate
}

// Current returns the coordinate, if any.
func (l *Location) Current() (models.Coordinate, bool) {
	if l.coord == nil {
		return models.Coordinate{}, false
	}
	return *l.coord, true
}

// Replace sets the location to next when it differs, reporting whether it did.
func (l *Location) Replace(next models.Coordinate) bool {
	if !Changed(l.coord, next) {
		return false
	}
	c := next
	l.coord = &c
	return true
}

// Query returns the shareable form of the current location, or "".
func (l *Location) Query() string {
	if l.coord == nil {
		return ""
	}
	return Share(*l.coord)
}
