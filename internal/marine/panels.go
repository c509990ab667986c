package marine

import "strings"

// Tab is a top-level marine view.
type Tab int

const (
	TabWeather Tab = iota
	TabBio
	TabTide
	TabAstronomy
	TabSolar
	TabElevation
	TabHistorical
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabWeather, TabBio, TabTide, TabAstronomy, TabSolar, TabElevation, TabHistorical}

func (t Tab) String() string {
	switch t {
	case TabWeather:
		return "Weather"
	case TabBio:
		return "Bio"
	case TabTide:
		return "Tide"
	case TabAstronomy:
		return "Astronomy"
	case TabSolar:
		return "Solar"
	case TabElevation:
		return "Elevation"
	case TabHistorical:
		return "Historical"
	default:
		return "Unknown"
	}
}

// ParseTab maps a tab name, in any case, to a Tab.
func ParseTab(name string) (Tab, bool) {
	for _, t := range Tabs {
		if strings.ToLower(t.String()) == strings.ToLower(name) {
			return t, true
		}
	}
	return TabWeather, false
}

// View is a sub-tab of the weather tab.
type View int

const (
	ViewOverview View = iota
	ViewWaves
	ViewWind
)

// Views lists the weather sub-tabs in display order.
var Views = []View{ViewOverview, ViewWaves, ViewWind}

func (v View) String() string {
	switch v {
	case ViewWaves:
		return "Wave Data"
	case ViewWind:
		return "Wind Data"
	default:
		return "Overview"
	}
}

// Section is a titled group of parameters with an optional chart.
type Section struct {
	Title  string
	Fields []string
	Chart  []string
}

// Sections returns the parameter layout for a tab. view only applies to TabWeather.
// Astronomy, Solar and Historical are derived panels and carry no fields here.
func Sections(tab Tab, view View) []Section {
	switch tab {
	case TabWeather:
		switch view {
		case ViewWaves:
			return []Section{
				{Title: "Waves", Fields: []string{"waveHeight", "wavePeriod", "waveDirection", "waterTemperature"}},
				{Title: "Wind Waves", Fields: []string{"windWaveHeight", "windWavePeriod", "windWaveDirection"}},
				{Title: "Primary Swell", Fields: []string{"swellHeight", "swellPeriod", "swellDirection"}},
				{Title: "Secondary Swell", Fields: []string{"secondarySwellHeight", "secondarySwellPeriod", "secondarySwellDirection"}},
				{Title: "Wave Heights (24h)", Chart: []string{"waveHeight", "windWaveHeight", "swellHeight", "secondarySwellHeight"}},
			}
		case ViewWind:
			return []Section{
				{Title: "Surface Wind", Fields: []string{"windSpeed", "windDirection", "gust"}},
				{Title: "Wind by Height", Fields: []string{"windSpeed20m", "windSpeed30m", "windSpeed40m", "windSpeed50m", "windSpeed80m", "windSpeed100m"}},
				{Title: "Wind by Pressure Level", Fields: []string{"windSpeed1000hpa", "windSpeed800hpa", "windSpeed500hpa", "windSpeed200hpa"}},
				{Title: "Wind Direction by Height", Fields: []string{
					"windDirection", "windDirection20m", "windDirection30m", "windDirection40m",
					"windDirection50m", "windDirection80m", "windDirection100m",
				}},
				{Title: "Wind Direction by Pressure Level", Fields: []string{"windDirection1000hpa", "windDirection800hpa", "windDirection500hpa", "windDirection200hpa"}},
				{Title: "Wind Speed (24h)", Chart: []string{"windSpeed", "windSpeed100m", "windSpeed500hpa", "gust"}},
			}
		default:
			return []Section{
				{Title: "Air Temperature", Fields: []string{"airTemperature", "airTemperature80m", "airTemperature100m"}},
				{Title: "Wind", Fields: []string{"windSpeed", "windDirection", "gust"}},
				{Title: "Waves", Fields: []string{"waveHeight", "waveDirection", "wavePeriod"}},
				{Title: "Water & Air", Fields: []string{"waterTemperature", "humidity", "visibility", "dewPointTemperature"}},
				{Title: "Atmosphere", Fields: []string{"cloudCover", "precipitation", "pressure"}},
				{Title: "Currents", Fields: []string{"currentSpeed", "currentDirection", "seaLevel"}},
				{Title: "Ice & Snow", Fields: []string{"iceCover", "seaIceThickness", "snowDepth", "snowAlbedo"}},
				{Title: "24 Hour Trend", Chart: []string{"waveHeight", "windSpeed", "waterTemperature"}},
			}
		}
	case TabBio:
		return []Section{
			{Title: "Water Quality", Fields: []string{"visibility", "waterTemperature", "humidity"}},
			{Title: "Visibility & Water Temp (24h)", Chart: []string{"visibility", "waterTemperature"}},
		}
	case TabTide:
		return []Section{
			{Title: "Sea Level", Fields: []string{"seaLevel"}},
			{Title: "Sea Level (24h)", Chart: []string{"seaLevel"}},
		}
	case TabElevation:
		return []Section{
			{Title: "Wave Height", Fields: []string{"waveHeight"}},
			{Title: "Swell", Fields: []string{"swellHeight", "swellDirection", "swellPeriod"}},
			{Title: "Wind Waves", Fields: []string{"windWaveHeight", "windWaveDirection", "windWavePeriod"}},
			{Title: "Wave Components (24h)", Chart: []string{"waveHeight", "swellHeight", "windWaveHeight"}},
		}
	case TabSolar:
		return []Section{
			{Title: "Cloud Cover", Fields: []string{"cloudCover"}},
		}
	case TabHistorical:
		return []Section{
			{Title: "Trend (24h)", Chart: []string{"waveHeight", "windSpeed", "waterTemperature"}},
		}
	}
	return nil
}
