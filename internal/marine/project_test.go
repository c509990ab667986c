package marine

import (
	"testing"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/stormglass"
)

func hour(ts time.Time, values map[string]map[string]float64) models.MarineHour {
	return models.MarineHour{Time: ts, Values: values}
}

func TestProjector_MissingSourceIsUnavailable(t *testing.T) {
	h := hour(time.Now(), map[string]map[string]float64{
		"waveHeight": {"sg": 1.23},
	})

	if got := NewProjector("noaa").Format(h, "waveHeight"); got != Unavailable {
		t.Errorf("Format(noaa) = %q, want %q", got, Unavailable)
	}
	if got := NewProjector("").Format(h, "waveHeight"); got != "1.2 m" {
		t.Errorf("Format(sg) = %q, want 1.2 m", got)
	}
	if got := NewProjector("sg").Format(h, "swellHeight"); got != Unavailable {
		t.Errorf("missing param = %q, want %q", got, Unavailable)
	}
}

func TestProjector_FamilyPrecision(t *testing.T) {
	h := hour(time.Now(), map[string]map[string]float64{
		"windDirection":  {"sg": 231.6},
		"cloudCover":     {"sg": 45.4},
		"pressure":       {"sg": 1013.25},
		"iceCover":       {"sg": 0.137},
		"airTemperature": {"sg": 18.04},
	})
	p := NewProjector(DefaultSource)

	tests := []struct {
		param string
		want  string
	}{
		{"windDirection", "232 °"},
		{"cloudCover", "45 %"},
		{"pressure", "1013 hPa"},
		{"iceCover", "0.14"},
		{"airTemperature", "18.0 °C"},
	}

	for _, tt := range tests {
		if got := p.Format(h, tt.param); got != tt.want {
			t.Errorf("Format(%s) = %q, want %q", tt.param, got, tt.want)
		}
	}
}

func TestCatalogueCoversRequestedParams(t *testing.T) {
	for _, name := range stormglass.Params {
		if _, ok := Lookup(name); !ok {
			t.Errorf("param %q missing from catalogue", name)
		}
	}
}

func TestProjector_SeriesSkipsGaps(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	hours := []models.MarineHour{
		hour(base, map[string]map[string]float64{"seaLevel": {"sg": 0.4}}),
		hour(base.Add(time.Hour), map[string]map[string]float64{}),
		hour(base.Add(2*time.Hour), map[string]map[string]float64{"seaLevel": {"sg": 0.7}}),
	}

	series := NewProjector("").Series(hours, "seaLevel")
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2", len(series))
	}
	if !series[1].Time.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("second point time = %v", series[1].Time)
	}

	values := NewProjector("").Values(hours, "seaLevel")
	if len(values) != 2 || values[0] != 0.4 || values[1] != 0.7 {
		t.Errorf("Values = %v", values)
	}
}

func TestProjector_Snapshot(t *testing.T) {
	h := hour(time.Now(), map[string]map[string]float64{"gust": {"sg": 9.87}})

	snap := NewProjector("").Snapshot(h, []string{"gust", "seaLevel"})
	if snap["gust"] != "9.9 m/s" {
		t.Errorf("gust = %q", snap["gust"])
	}
	if snap["seaLevel"] != Unavailable {
		t.Errorf("seaLevel = %q", snap["seaLevel"])
	}
}
