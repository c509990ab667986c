// Package marine projects the provider's nested hourly records onto display
// values: one data source per parameter, a fixed unit and precision per
// parameter family, and the derived panels shown in the marine tabs.
package marine

import "strings"

// Family groups parameters that share a display precision.
type Family int

const (
	Magnitude  Family = iota // continuous quantities, 1 decimal
	Angle                    // directions in degrees, 0 decimals
	Percent                  // 0 decimals
	Pressure                 // hPa, 0 decimals
	Proportion               // 0..1 fractions, 2 decimals
)

// Decimals returns the display precision for the family.
func (f Family) Decimals() int {
	switch f {
	case Angle, Percent, Pressure:
		return 0
	case Proportion:
		return 2
	default:
		return 1
	}
}

// Param describes how one provider parameter is shown.
type Param struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Unit   string `json:"unit"`
	Family Family `json:"-"`
}

// Decimals returns the param's display precision.
func (p Param) Decimals() int {
	return p.Family.Decimals()
}

var catalogue = buildCatalogue()

func buildCatalogue() map[string]Param {
	params := []Param{
		{"waterTemperature", "Water Temperature", "°C", Magnitude},
		{"wavePeriod", "Wave Period", "s", Magnitude},
		{"waveDirection", "Wave Direction", "°", Angle},
		{"waveHeight", "Wave Height", "m", Magnitude},
		{"windWaveDirection", "Wind Wave Direction", "°", Angle},
		{"windWaveHeight", "Wind Wave Height", "m", Magnitude},
		{"windWavePeriod", "Wind Wave Period", "s", Magnitude},
		{"swellPeriod", "Swell Period", "s", Magnitude},
		{"secondarySwellPeriod", "Secondary Swell Period", "s", Magnitude},
		{"swellDirection", "Swell Direction", "°", Angle},
		{"secondarySwellDirection", "Secondary Swell Direction", "°", Angle},
		{"swellHeight", "Swell Height", "m", Magnitude},
		{"secondarySwellHeight", "Secondary Swell Height", "m", Magnitude},
		{"windSpeed", "Wind Speed", "m/s", Magnitude},
		{"windDirection", "Wind Direction", "°", Angle},
		{"airTemperature", "Air Temperature", "°C", Magnitude},
		{"precipitation", "Precipitation", "mm", Magnitude},
		{"gust", "Gust", "m/s", Magnitude},
		{"cloudCover", "Cloud Cover", "%", Percent},
		{"humidity", "Humidity", "%", Percent},
		{"pressure", "Pressure", "hPa", Pressure},
		{"visibility", "Visibility", "km", Magnitude},
		{"currentSpeed", "Current Speed", "m/s", Magnitude},
		{"currentDirection", "Current Direction", "°", Angle},
		{"iceCover", "Ice Cover", "", Proportion},
		{"snowDepth", "Snow Depth", "m", Magnitude},
		{"seaLevel", "Sea Level", "m", Magnitude},
		{"snowAlbedo", "Snow Albedo", "", Proportion},
		{"seaIceThickness", "Sea Ice Thickness", "m", Magnitude},
		{"dewPointTemperature", "Dew Point", "°C", Magnitude},
	}

	// Height and pressure-level variants share the base parameter's unit.
	levels := []struct{ suffix, label string }{
		{"20m", "20m"}, {"30m", "30m"}, {"40m", "40m"}, {"50m", "50m"},
		{"80m", "80m"}, {"100m", "100m"},
		{"1000hpa", "1000hPa"}, {"800hpa", "800hPa"}, {"500hpa", "500hPa"}, {"200hpa", "200hPa"},
	}
	for _, lv := range levels {
		params = append(params,
			Param{"windSpeed" + lv.suffix, "Wind Speed " + lv.label, "m/s", Magnitude},
			Param{"windDirection" + lv.suffix, "Wind Direction " + lv.label, "°", Angle},
		)
	}
	for _, lv := range []string{"80m", "100m", "1000hpa", "800hpa", "500hpa", "200hpa"} {
		label := strings.Replace(lv, "hpa", "hPa", 1)
		params = append(params, Param{"airTemperature" + lv, "Air Temperature " + label, "°C", Magnitude})
	}

	out := make(map[string]Param, len(params))
	for _, p := range params {
		out[p.Name] = p
	}
	return out
}

// Lookup returns the display definition for name. Unknown names are treated as
// unitless magnitudes.
func Lookup(name string) (Param, bool) {
	p, ok := catalogue[name]
	if !ok {
		return Param{Name: name, Label: name, Family: Magnitude}, false
	}
	return p, true
}
