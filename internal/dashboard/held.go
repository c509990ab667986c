package dashboard

import "github.com/ngmaloney/mariner-console/internal/models"

// WeatherHeld reports whether report already covers coord, within 0.01°.
func WeatherHeld(report *models.WeatherReport, coord models.Coordinate) bool {
	return report != nil && report.Current != nil && report.Coord.Within(coord, models.WeatherTolerance)
}

// MarineHeld reports whether data was fetched for exactly coord.
func MarineHeld(data *models.MarineData, coord models.Coordinate) bool {
	return data != nil && data.Stamp.Equal(coord)
}
