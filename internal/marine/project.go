package marine

import (
	"fmt"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// DefaultSource is the provider's blended data source tag.
const DefaultSource = "sg"

// Unavailable is shown for any value the chosen source does not carry.
const Unavailable = "N/A"

// HoursShown is how many leading hours of the series are used.
const HoursShown = 24

// FormatValue renders v with unit at the given precision, or Unavailable.
func FormatValue(v float64, ok bool, unit string, decimals int) string {
	if !ok {
		return Unavailable
	}
	if unit == "" {
		return fmt.Sprintf("%.*f", decimals, v)
	}
	return fmt.Sprintf("%.*f %s", decimals, v, unit)
}

// Point is one hourly sample of a parameter.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Projector reads a single data source out of each hourly record.
type Projector struct {
	Source string
}

// NewProjector returns a projector for source (DefaultSource when empty).
func NewProjector(source string) Projector {
	if source == "" {
		source = DefaultSource
	}
	return Projector{Source: source}
}

// Value returns param from the projector's source.
func (p Projector) Value(h models.MarineHour, param string) (float64, bool) {
	return h.Value(param, p.Source)
}

// Format renders param using its catalogue unit and precision.
func (p Projector) Format(h models.MarineHour, param string) string {
	def, _ := Lookup(param)
	v, ok := p.Value(h, param)
	return FormatValue(v, ok, def.Unit, def.Decimals())
}

// Series returns the available samples of param in time order. Hours without
// a value are skipped.
func (p Projector) Series(hours []models.MarineHour, param string) []Point {
	points := make([]Point, 0, len(hours))
	for _, h := range hours {
		if v, ok := p.Value(h, param); ok {
			points = append(points, Point{Time: h.Time, Value: v})
		}
	}
	return points
}

// Values is Series without timestamps, for sparklines.
func (p Projector) Values(hours []models.MarineHour, param string) []float64 {
	series := p.Series(hours, param)
	out := make([]float64, len(series))
	for i, pt := range series {
		out[i] = pt.Value
	}
	return out
}

// Snapshot formats every catalogued parameter present in params for one hour.
func (p Projector) Snapshot(h models.MarineHour, params []string) map[string]string {
	out := make(map[string]string, len(params))
	for _, name := range params {
		out[name] = p.Format(h, name)
	}
	return out
}
