package marine

import (
	"math"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// Summary condenses the shown hours into the historical panel figures.
// Missing samples count as zero in every aggregate.
type Summary struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Hours        int     `json:"hours"`
	MaxWave      float64 `json:"max_wave_height"`
	MaxWind      float64 `json:"max_wind_speed"`
	AvgWaterTemp float64 `json:"avg_water_temperature"`
}

// DateLayout is used for the summary's date range.
const DateLayout = "Jan 2"

// Summarize builds the Summary over hours. An empty input yields a zero Summary.
func (p Projector) Summarize(hours []models.MarineHour) Summary {
	if len(hours) == 0 {
		return Summary{}
	}

	s := Summary{
		From:    hours[0].Time.Local().Format(DateLayout),
		To:      hours[len(hours)-1].Time.Local().Format(DateLayout),
		Hours:   len(hours),
		MaxWave: math.Inf(-1),
		MaxWind: math.Inf(-1),
	}

	var waterSum float64
	for _, h := range hours {
		wave, _ := p.Value(h, "waveHeight")
		wind, _ := p.Value(h, "windSpeed")
		water, _ := p.Value(h, "waterTemperature")

		s.MaxWave = math.Max(s.MaxWave, wave)
		s.MaxWind = math.Max(s.MaxWind, wind)
		waterSum += water
	}
	s.AvgWaterTemp = waterSum / float64(len(hours))

	return s
}

// Range renders "From - To".
func (s Summary) Range() string {
	if s.From == "" {
		return Unavailable
	}
	return s.From + " - " + s.To
}
