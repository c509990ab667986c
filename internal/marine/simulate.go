package marine

import (
	"math"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// SolarRadiation approximates irradiance in W/m² as a half-sine over
// 06:00-18:00 local time, peaking at 1000 at noon.
func SolarRadiation(t time.Time) float64 {
	h := t.Hour()
	if h < 6 || h > 18 {
		return 0
	}
	return math.Sin(float64(h-6)/12*math.Pi) * 1000
}

// SolarPoint pairs simulated radiation with the provider's cloud cover.
type SolarPoint struct {
	Time       time.Time `json:"time"`
	Radiation  float64   `json:"radiation"`
	CloudCover float64   `json:"cloud_cover"`
	HasCloud   bool      `json:"has_cloud"`
}

// Solar returns one SolarPoint per hour, evaluated in loc.
func (p Projector) Solar(hours []models.MarineHour, loc *time.Location) []SolarPoint {
	if loc == nil {
		loc = time.Local
	}
	out := make([]SolarPoint, 0, len(hours))
	for _, h := range hours {
		cc, ok := p.Value(h, "cloudCover")
		out = append(out, SolarPoint{
			Time:       h.Time,
			Radiation:  SolarRadiation(h.Time.In(loc)),
			CloudCover: cc,
			HasCloud:   ok,
		})
	}
	return out
}

// Astronomy holds approximate rise and set times. The provider has no
// astronomy data, so these come from a seasonal table.
type Astronomy struct {
	Sunrise  string `json:"sunrise"`
	Sunset   string `json:"sunset"`
	Moonrise string `json:"moonrise"`
	Moonset  string `json:"moonset"`
}

// ApproximateAstronomy returns the northern-hemisphere table entry for t's
// month: April through September use the summer row.
func ApproximateAstronomy(t time.Time) Astronomy {
	if m := t.Month(); m >= time.April && m <= time.September {
		return Astronomy{Sunrise: "05:30 AM", Sunset: "08:45 PM", Moonrise: "09:15 PM", Moonset: "06:30 AM"}
	}
	return Astronomy{Sunrise: "07:15 AM", Sunset: "05:30 PM", Moonrise: "06:45 PM", Moonset: "07:30 AM"}
}
